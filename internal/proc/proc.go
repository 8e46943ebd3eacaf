// Package proc launches scorer processes and reports how they exited.
package proc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs one scorer command in a working directory and blocks until
// it exits. Implementations stream the child's output straight to the
// harness stdio; results are read from the files the scorer leaves behind.
type Executor interface {
	Run(ctx context.Context, argv []string, dir string) error
}

// CommandError reports a scorer invocation that could not start or exited
// non-zero.
type CommandError struct {
	Command string
	Dir     string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q in %s: %v", e.Command, e.Dir, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Local runs commands as child processes on the host with the parent's
// environment. Python, when set, substitutes the interpreter for scorer
// scripts that name plain "python".
type Local struct {
	Python string
}

func (l Local) Run(ctx context.Context, argv []string, dir string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	argv = l.rewrite(argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Command: strings.Join(argv, " "), Dir: dir, Err: err}
	}
	return nil
}

func (l Local) rewrite(argv []string) []string {
	if l.Python == "" || argv[0] != "python" {
		return argv
	}
	out := make([]string, len(argv))
	copy(out, argv)
	out[0] = l.Python
	return out
}
