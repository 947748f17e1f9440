// Package ui holds presentation-level concerns shared by the CLI surfaces:
// output format selection and terminal capability detection.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks table on capable terminals and plain otherwise
	FormatAuto Format = iota
	// FormatTable renders a styled terminal table
	FormatTable
	// FormatPlain renders unstyled line-oriented text
	FormatPlain
	// FormatJSON renders the machine-readable preview document
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTable:
		return "table"
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "table":
		return FormatTable, nil
	case "plain", "text":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectFormat resolves FormatAuto against the environment and terminal
// capabilities of the given output file.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatPlain
	}

	// Piped or redirected output gets plain text
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatPlain
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatPlain
	}

	return FormatTable
}

// Resolve returns the concrete format to use: auto is detected against
// the output file, anything else is returned unchanged.
func (f Format) Resolve(output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}
