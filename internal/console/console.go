// Package console prints user-facing status lines for the CLI layer.
// Deeper packages log through the standard logger instead.
package console

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
)

// Warnf prints a highlighted warning line. The run keeps going after these.
func Warnf(format string, a ...any) {
	yellow.Printf("warning: "+format+"\n", a...)
}

// Successf prints a highlighted completion line.
func Successf(format string, a ...any) {
	green.Printf(format+"\n", a...)
}

// Failf prints a highlighted hard-failure line.
func Failf(format string, a ...any) {
	red.Printf(format+"\n", a...)
}

// Noticef prints an informational line, such as a skipped optional step.
func Noticef(format string, a ...any) {
	cyan.Printf(format+"\n", a...)
}

// Stepf prints a plain progress line for the current pipeline step.
func Stepf(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}
