package knock

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Command is one process invocation.
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  []string
}

// Output is the outcome of a finished process. Stdout and stderr are
// combined.
type Output struct {
	ExitCode int
	Combined string
}

// Runner executes commands. Errors are reserved for processes that could not
// be started; a non-zero exit is reported through Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	out := Output{Combined: combined.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, err
	}
	return out, nil
}
