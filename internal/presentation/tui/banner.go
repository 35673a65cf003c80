package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes status lines, coloured only when the writer is a terminal.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, profile: profileFor(w)}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func profileFor(w io.Writer) termenv.Profile {
	if !IsTerminal(w) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// Plain reports whether output is uncoloured.
func (p *Printer) Plain() bool {
	return p.profile == termenv.Ascii
}

// Output prints the location of a written diagram.
func (p *Printer) Output(path string) {
	fmt.Fprintln(p.out, p.style("File output to: "+path, "#3b82f6"))
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.style("✔", "#22c55e"), msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.style("⚠", "#eab308"), msg)
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.style("ℹ", "#3b82f6"), msg)
}

// Error prints err in bold red.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.style("Error: "+err.Error(), "#ef4444"))
}

// style colours s in bold; plain printers return s untouched.
func (p *Printer) style(s, color string) string {
	if p.Plain() {
		return s
	}
	return p.profile.String(s).Foreground(p.profile.Color(color)).Bold().String()
}
