package main

import (
	"io"
	"os"

	"github.com/monkeylang/monkey/runtime/tokenfmt"
)

// ColorYellow is used for hints; the other colors come from tokenfmt
const ColorYellow = "\033[33m"

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	return tokenfmt.Colorize(text, color, useColor)
}

// ShouldUseColor determines if color output should be used for w.
// Respects --no-color flag and NO_COLOR environment variable.
func ShouldUseColor(noColorFlag bool, w io.Writer) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
