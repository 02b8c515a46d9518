package style

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	// Color palette
	ErrorColor   = lipgloss.Color("#FF6B6B")
	ErrorBgColor = lipgloss.Color("#3D2020")
	WarningColor = lipgloss.Color("#FFA726")
	SuccessColor = lipgloss.Color("#66BB6A")
	InfoColor    = lipgloss.Color("#42A5F5")
	MutedColor   = lipgloss.Color("#6C757D")
	AccentColor  = lipgloss.Color("#7C3AED")
	CodeColor    = lipgloss.Color("#D4D4D4")

	PrimaryTextColor = lipgloss.Color("#E4E4E7")

	// Base styles
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(PrimaryTextColor).
			Bold(true)
)

// Printer renders calculator output. A plain Printer returns text untouched,
// which is what pipes and tests get.
type Printer struct {
	plain  bool
	prompt *color.Color
}

// NewPrinter returns a Printer that styles output when colored is true.
func NewPrinter(colored bool) *Printer {
	prompt := color.New(color.FgCyan, color.Bold)
	if colored {
		prompt.EnableColor()
	} else {
		prompt.DisableColor()
	}

	return &Printer{
		plain:  !colored,
		prompt: prompt,
	}
}

// Plain returns a Printer that never styles.
func Plain() *Printer {
	return NewPrinter(false)
}

func (p *Printer) Colored() bool { return !p.plain }

func (p *Printer) render(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

// Title renders a banner heading
func (p *Printer) Title(text string) string { return p.render(TitleStyle, text) }

func (p *Printer) Muted(text string) string { return p.render(MutedStyle, text) }

func (p *Printer) Warning(text string) string { return p.render(WarningStyle, text) }

func (p *Printer) Error(text string) string { return p.render(ErrorStyle, text) }

// Result renders a "Result: <value>" line. Failed results are highlighted as
// errors.
func (p *Printer) Result(value string, failed bool) string {
	label := p.render(SuccessStyle, "Result:")
	if failed {
		return label + " " + p.render(ErrorStyle, value)
	}
	return label + " " + p.render(ValueStyle, value)
}

// Prompt colors the prompt text. Leading newlines are left outside the
// escape sequence so line editors measure the prompt correctly.
func (p *Printer) Prompt(text string) string {
	if p.plain {
		return text
	}

	i := 0
	for i < len(text) && text[i] == '\n' {
		i++
	}
	if i == len(text) {
		return text
	}
	return text[:i] + p.prompt.Sprint(text[i:])
}

// PrintJSON outputs data as formatted JSON
func PrintJSON(w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding JSON: %v\n", err)
	}
}

// PrintYAML outputs data as YAML
func PrintYAML(w io.Writer, data interface{}) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding YAML: %v\n", err)
	}
	encoder.Close()
}
