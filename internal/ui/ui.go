// Package ui prints user-facing status lines with colored markers.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// ConfigureColor applies a color mode: "always", "never" or "auto". Auto
// leaves the terminal detection of fatih/color in place. noColor wins over
// any mode.
func ConfigureColor(mode string, noColor bool) {
	switch {
	case noColor, mode == "never":
		color.NoColor = true
	case mode == "always":
		color.NoColor = false
	}
}

// Printer writes status lines to w.
type Printer struct {
	w io.Writer
}

// New creates a Printer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

// Title prints a bold heading.
func (p *Printer) Title(format string, args ...any) {
	fmt.Fprintln(p.w, bold.Sprintf(format, args...))
}

// Line prints plain text.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a line prefixed with a green check mark.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", green.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a line prefixed with a yellow marker.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", yellow.Sprint("!"), fmt.Sprintf(format, args...))
}

// Error prints a line prefixed with a red cross.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", red.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Info prints a line prefixed with a cyan arrow.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", cyan.Sprint("→"), fmt.Sprintf(format, args...))
}

// Diff prints a unified diff, coloring added and removed lines.
func (p *Printer) Diff(diff string) {
	if diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(p.w, bold.Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(p.w, green.Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(p.w, red.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(p.w, cyan.Sprint(line))
		default:
			fmt.Fprintln(p.w, line)
		}
	}
}
