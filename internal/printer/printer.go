package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Success prints a success message in green with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ "+format+"\n", a...)
}

// Info prints an informational message in the default color.
func Info(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	yellow.Printf("! "+format+"\n", a...)
}

// Errorf prints an error message in red to stderr and returns a plain
// error for cobra.
func Errorf(format string, a ...any) error {
	red.Fprintf(os.Stderr, "%s\n", fmt.Sprintf(format, a...))
	return fmt.Errorf(format, a...)
}
