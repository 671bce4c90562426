// Package presenter prints user-facing command results with consistent
// symbols and color. Diagnostics belong to the logger package instead.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects when colored output is used
type ColorMode int

const (
	// ColorAuto lets fatih/color detect terminal support
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// Presenter writes results to out and failures to errOut
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// New creates a Presenter on stdout/stderr with the color mode from the environment
func New() *Presenter {
	return NewWithOptions(os.Stdout, os.Stderr, DetectColorMode())
}

// NewWithOptions creates a Presenter with custom writers
func NewWithOptions(out, errOut io.Writer, mode ColorMode) *Presenter {
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
	return &Presenter{out: out, errOut: errOut}
}

// DetectColorMode reads NO_COLOR and SKILLCTL_COLOR
func DetectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	switch os.Getenv("SKILLCTL_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Success prints a confirmation line
func (p *Presenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.out, "✓ %s\n", message)
}

// Warning prints a non-fatal problem
func (p *Presenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.out, "⚠ %s\n", message)
}

// Info prints a plain line
func (p *Presenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, message)
}

// Detail prints an indented list entry under a previous line
func (p *Presenter) Detail(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "  - %s\n", message)
}

// Section prints an underlined header
func (p *Presenter) Section(title string) {
	if p.quiet {
		return
	}
	header := color.New(color.Bold)
	header.Fprintln(p.out, title)
	header.Fprintln(p.out, strings.Repeat("-", len(title)))
}

// Error prints a failure to errOut, even in quiet mode
func (p *Presenter) Error(err error) {
	if err == nil {
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(p.errOut, "✗ %v\n", err)
}

// SetQuiet suppresses everything except errors
func (p *Presenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}
