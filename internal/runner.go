package internal

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external command to completion. argv[0] is the program.
type Runner interface {
	Run(argv []string) (CommandResult, error)
}

// ProcessError is returned when the command ran but exited non-zero.
type ProcessError struct {
	ExitCode int
	Command  []string
	Stdout   string
	Stderr   string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf(
		"process returned non-zero exit code\nexit code: %d\ncommand: %s\n\nstderr:\n%s\n\nstdout:\n%s",
		e.ExitCode,
		strings.Join(e.Command, " "),
		strings.TrimSpace(e.Stderr),
		strings.TrimSpace(e.Stdout),
	)
}

// UnexpectedError covers every failure other than a non-zero exit, most
// commonly an executable that could not be started.
type UnexpectedError struct {
	Command []string
	Err     error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error running %q: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

var errEmptyCommand = errors.New("empty command")

// ExecRunner runs commands through os/exec, blocking until they exit.
type ExecRunner struct{}

func (ExecRunner) Run(argv []string) (CommandResult, error) {
	if len(argv) == 0 || argv[0] == "" {
		return CommandResult{}, &UnexpectedError{Command: argv, Err: errEmptyCommand}
	}

	log.Printf("exec: %s", strings.Join(argv, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		log.Printf("exec: %s exited with %d", argv[0], res.ExitCode)
		return res, &ProcessError{
			ExitCode: res.ExitCode,
			Command:  append([]string(nil), argv...),
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}

	log.Printf("exec: %s failed: %v", argv[0], err)
	res.ExitCode = -1
	return res, &UnexpectedError{Command: append([]string(nil), argv...), Err: err}
}
