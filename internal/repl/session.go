// Package repl runs the interactive calculator loop: prompt, parse,
// evaluate, report, until the user quits.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/lacquerai/calq/internal/arith"
	"github.com/lacquerai/calq/internal/expression"
	"github.com/lacquerai/calq/internal/style"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPrompt = "\nEnter calculation (e.g., 5 + 3): "

	// DefaultMaxReadErrors is how many consecutive read failures end a
	// session.
	DefaultMaxReadErrors = 10

	quitCommand = "quit"

	msgFarewell         = "Goodbye!"
	msgInvalidOperation = "Invalid operation. Use +, -, *, or /"
	msgInvalidInput     = "Invalid input. Please enter numbers only."
)

// Banner is printed once before the first prompt.
var Banner = []string{
	"Simple Calculator",
	"Operations: " + operatorList(),
	"Type 'quit' to exit",
}

func operatorList() string {
	ops := expression.Operators()
	symbols := make([]string, len(ops))
	for i, op := range ops {
		symbols[i] = op.String()
	}
	return strings.Join(symbols, ", ")
}

// State is a step of the loop.
type State int

const (
	StatePrompting State = iota
	StateParsing
	StateEvaluating
	StateReporting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateParsing:
		return "parsing"
	case StateEvaluating:
		return "evaluating"
	case StateReporting:
		return "reporting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Stats counts what happened during a session.
type Stats struct {
	Results           int `json:"results"`
	DivisionsByZero   int `json:"divisions_by_zero"`
	InvalidOperations int `json:"invalid_operations"`
	InvalidInputs     int `json:"invalid_inputs"`
	Errors            int `json:"errors"`
}

// EvaluateFunc computes the outcome of a parsed request.
type EvaluateFunc func(expression.Request) (arith.Outcome, error)

// Session is one run of the interactive loop.
type Session struct {
	reader  LineReader
	out     io.Writer
	printer *style.Printer
	logger  zerolog.Logger

	prompt        string
	banner        bool
	maxReadErrors int
	evaluate      EvaluateFunc

	state State
	stats Stats
}

// Option configures a Session
type Option func(*Session)

// WithPrompt overrides DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithBanner controls whether the banner is printed.
func WithBanner(show bool) Option {
	return func(s *Session) {
		s.banner = show
	}
}

// WithPrinter sets how responses are styled. The default is style.Plain().
func WithPrinter(p *style.Printer) Option {
	return func(s *Session) {
		if p != nil {
			s.printer = p
		}
	}
}

// WithLogger sets the logger for per-iteration debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMaxReadErrors sets how many consecutive read errors are tolerated.
func WithMaxReadErrors(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxReadErrors = n
		}
	}
}

// WithEvaluator replaces expression.Evaluate.
func WithEvaluator(fn EvaluateFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.evaluate = fn
		}
	}
}

// NewSession creates a session reading from reader and writing responses to
// out.
func NewSession(reader LineReader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		reader:        reader,
		out:           out,
		printer:       style.Plain(),
		logger:        log.Logger,
		prompt:        DefaultPrompt,
		banner:        true,
		maxReadErrors: DefaultMaxReadErrors,
		evaluate:      expression.Evaluate,
		state:         StatePrompting,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the state the loop is in.
func (s *Session) State() State { return s.state }

// Stats returns the counters collected so far.
func (s *Session) Stats() Stats { return s.stats }

// Run drives the loop until the user quits, input ends, or ctx is cancelled.
// Each of those ends with the farewell message and a nil error. Failures
// inside an iteration are reported and never end the loop; only repeated
// read failures do.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		if err := s.reader.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Failed to close line reader")
		}
	}()

	if s.banner {
		for i, line := range Banner {
			if i == 0 {
				s.println(s.printer.Title(line))
				continue
			}
			s.println(s.printer.Muted(line))
		}
	}

	readErrors := 0
	for s.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			s.logger.Debug().Err(err).Msg("Session cancelled")
			s.terminate()
			break
		}

		s.state = StatePrompting
		line, err := s.reader.ReadLine(s.printer.Prompt(s.prompt))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) || ctx.Err() != nil {
				s.logger.Debug().Err(err).Msg("Input closed")
				s.terminate()
				break
			}

			readErrors++
			s.report(fmt.Errorf("reading input: %w", err))
			if readErrors >= s.maxReadErrors {
				s.state = StateTerminated
				return fmt.Errorf("giving up after %d read errors: %w", readErrors, err)
			}
			continue
		}
		readErrors = 0

		s.step(line)
	}

	s.logger.Debug().
		Int("results", s.stats.Results).
		Int("divisions_by_zero", s.stats.DivisionsByZero).
		Int("invalid_operations", s.stats.InvalidOperations).
		Int("invalid_inputs", s.stats.InvalidInputs).
		Int("errors", s.stats.Errors).
		Msg("Session finished")

	return nil
}

// step handles one input line inside the iteration's error boundary.
func (s *Session) step(line string) {
	err := guard(func() error {
		return s.handle(line)
	})
	if err != nil {
		s.report(err)
	}
	if s.state != StateTerminated {
		s.state = StatePrompting
	}
}

func (s *Session) handle(line string) error {
	input := strings.TrimSpace(line)
	if strings.ToLower(input) == quitCommand {
		s.terminate()
		return nil
	}

	s.state = StateParsing
	req, err := expression.Parse(input)
	if err != nil {
		return err
	}

	s.state = StateEvaluating
	out, err := s.evaluate(req)
	if err != nil {
		return fmt.Errorf("evaluation error: %w", err)
	}

	s.state = StateReporting
	s.logger.Debug().
		Str("input", input).
		Str("operator", req.Operator.Name()).
		Float64("left", req.Left).
		Float64("right", req.Right).
		Stringer("outcome", out).
		Msg("Evaluated expression")

	failed := out.Err() != nil
	if failed {
		s.stats.DivisionsByZero++
	} else {
		s.stats.Results++
	}
	s.println(s.printer.Result(out.String(), failed))
	return nil
}

// report maps an iteration failure to its one-line message.
func (s *Session) report(err error) {
	s.logger.Debug().Err(err).Str("state", s.state.String()).Msg("Iteration failed")

	switch {
	case errors.Is(err, expression.ErrInvalidOperation):
		s.stats.InvalidOperations++
		s.println(s.printer.Warning(msgInvalidOperation))
	case errors.Is(err, expression.ErrInvalidOperand):
		s.stats.InvalidInputs++
		s.println(s.printer.Warning(msgInvalidInput))
	default:
		s.stats.Errors++
		s.println(s.printer.Error("Error: " + err.Error()))
	}
}

func (s *Session) terminate() {
	s.state = StateTerminated
	s.println(s.printer.Muted(msgFarewell))
}

func (s *Session) println(text string) {
	// a broken stdout is not something the loop can report anywhere
	_, _ = fmt.Fprintln(s.out, text)
}

// PanicError is a panic recovered inside an iteration.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// guard runs fn, turning a panic into a *PanicError.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
