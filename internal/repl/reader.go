package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl-C at
// the prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader prompts for and reads one line of input at a time.
type LineReader interface {
	// ReadLine writes prompt and blocks until a full line is read. The
	// returned line has no trailing newline. It returns io.EOF once input is
	// exhausted.
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader returns a line-editing reader when in is an interactive
// terminal, and a plain stream reader otherwise.
func NewLineReader(in io.Reader, out io.Writer) (LineReader, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewTerminalReader(f, out)
	}
	return NewStreamReader(in, out), nil
}

// StreamReader reads lines from any io.Reader. The prompt is written to out
// as-is; input is not echoed.
type StreamReader struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

// NewStreamReader reads lines from in and writes prompts to out.
func NewStreamReader(in io.Reader, out io.Writer) *StreamReader {
	return &StreamReader{
		in:  in,
		r:   bufio.NewReader(in),
		out: out,
	}
}

// ReadLine writes prompt and returns the next line without its line ending.
func (s *StreamReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(s.out, prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := s.r.ReadString('\n')
	if err != nil {
		// a final line without a newline still counts
		if errors.Is(err, io.EOF) && line != "" {
			return trimNewline(line), nil
		}
		return "", err
	}
	return trimNewline(line), nil
}

// Close closes the underlying input when it is closable, which unblocks a
// pending ReadLine on pipes.
func (s *StreamReader) Close() error {
	if c, ok := s.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// TerminalReader is a LineReader backed by readline. It keeps an in-memory
// history for the session.
type TerminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader starts readline on in, which must be a terminal.
func NewTerminalReader(in io.ReadCloser, out io.Writer) (*TerminalReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise line editor: %w", err)
	}

	return &TerminalReader{rl: rl}, nil
}

func (t *TerminalReader) ReadLine(prompt string) (string, error) {
	// readline redraws a single prompt line, so leading blank lines are
	// printed separately.
	rest := strings.TrimLeft(prompt, "\n")
	if lead := len(prompt) - len(rest); lead > 0 {
		if _, err := io.WriteString(t.rl.Stdout(), prompt[:lead]); err != nil {
			return "", fmt.Errorf("writing prompt: %w", err)
		}
	}

	t.rl.SetPrompt(rest)
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

func (t *TerminalReader) Close() error {
	return t.rl.Close()
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
