package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/monkeylang/monkey/runtime/tokenfmt"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "input", "lex", "output"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	cliErr, ok := err.(*CLIError)
	if !ok {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", tokenfmt.ColorRed, useColor), err.Error())
		return
	}

	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", tokenfmt.ColorRed, useColor), cliErr.Message)
	if cliErr.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", cliErr.Details)
	}
	if cliErr.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), cliErr.Hint)
	}
}
