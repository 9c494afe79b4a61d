// Package output handles rendering CLI output in different modes.
// Mode auto picks styled text on a TTY and markdown when piped, so
// command output stays readable in scripts without extra flags.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode is the output rendering mode.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	NodeLabel lipgloss.Style
}

func defaultStyles() *Styles {
	return &Styles{
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Header1:   lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:   lipgloss.NewStyle().Bold(true),
		NodeLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// noStyles returns pass-through styles for non-TTY output.
func noStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain, Success: plain,
		Bold: plain, Muted: plain, Header1: plain, Header2: plain,
		NodeLabel: plain,
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
	isTTY  bool
}

// NewRenderer creates a renderer. An empty or unknown mode falls back
// to auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON, ModeAuto:
	default:
		mode = ModeAuto
	}

	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii &&
			isTerminal(f)
	}

	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	if r.EffectiveMode() == ModeText && isTTY {
		r.styles = defaultStyles()
	} else {
		r.styles = noStyles()
	}
	return r
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// EffectiveMode resolves auto to text (TTY) or markdown (piped).
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the active styles. In non-TTY or markdown mode these
// are pass-through.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the underlying stdout writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line to stdout.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Success writes a success message to stdout.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Error writes an error message to stderr.
func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(msg))
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
