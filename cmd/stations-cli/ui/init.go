// Package ui provides terminal output components for the stations CLI.
package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Out receives regular command output.
	Out io.Writer = os.Stdout
	// Err receives progress indicators and error messages.
	Err io.Writer = os.Stderr

	verboseFlag bool
)

// InitUI initializes the UI with color and verbose settings.
func InitUI(noColor, verbose bool) {
	verboseFlag = verbose

	if noColor {
		color.NoColor = true
	}
}

// Verbose reports whether verbose output was requested.
func Verbose() bool {
	return verboseFlag
}
