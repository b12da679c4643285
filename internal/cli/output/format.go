// Package output provides output formatting utilities for CLI commands.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable outputs data in a formatted table.
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsStructured reports whether f is a machine-readable encoding.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Render writes data in format f. Table output uses renderer; JSON and YAML
// encode data directly.
func Render(w io.Writer, f Format, data any, renderer TableRenderer) error {
	switch f {
	case FormatJSON:
		return PrintJSON(w, data)
	case FormatYAML:
		return PrintYAML(w, data)
	case FormatTable, "":
		return PrintTable(w, renderer)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// Printer writes status lines, optionally colored.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a new Printer.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// Writer returns the printer's output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println prints a message followed by a newline.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Printf prints a formatted message.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Success prints a success message in green.
func (p *Printer) Success(msg string) {
	p.line("\033[32m", msg)
}

// Error prints an error message in red.
func (p *Printer) Error(msg string) {
	p.line("\033[31m", msg)
}

// Warning prints a warning message in yellow.
func (p *Printer) Warning(msg string) {
	p.line("\033[33m", msg)
}

func (p *Printer) line(color, msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.out, "%s%s\033[0m\n", color, msg)
		return
	}
	_, _ = fmt.Fprintln(p.out, msg)
}
