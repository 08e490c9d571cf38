// Package executor is the process-launch primitive for ansrun: it runs one
// external command with a working directory, an environment overlay, and a
// chosen output mode, and reports the exit status. Cancellation comes from
// the supplied context; the package implements no timeout of its own.
//
// The Executor interface exists so the invocation core can be tested against
// a mock instead of a live runner binary; see MockExecutor.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// OutputMode defines how command output is handled during execution.
type OutputMode int

const (
	// OutputModeCapture captures stdout and stderr separately into memory.
	OutputModeCapture OutputMode = iota

	// OutputModeCombined captures interleaved stdout+stderr, like
	// exec.CombinedOutput. This is the default.
	OutputModeCombined

	// OutputModeStream writes output to the terminal in real time while also
	// capturing it for error reporting.
	OutputModeStream

	// OutputModeDiscard drops stdout but captures stderr, for commands
	// running behind a spinner.
	OutputModeDiscard

	// OutputModeInteractive passes stdin/stdout/stderr straight through so
	// the child keeps TTY properties (colors, width). Nothing is captured.
	OutputModeInteractive
)

// Result is the outcome of one command execution.
type Result struct {
	// Stdout holds captured standard output, empty for modes that do not
	// capture it.
	Stdout []byte

	// Stderr holds captured standard error. Populated for every mode except
	// OutputModeInteractive so failures can be diagnosed.
	Stderr []byte

	// Combined holds the interleaved stream for OutputModeCombined, or
	// stdout followed by stderr for the other capturing modes.
	Combined []byte

	// ExitCode is the command's exit code; -1 means the command never
	// started (for example, executable not found).
	ExitCode int

	// Error is the error returned by the execution, nil on exit code 0.
	Error error
}

// Config describes one command execution. Context and Command are required.
type Config struct {
	Context    context.Context
	Command    string
	Args       []string
	WorkingDir string

	// Env is the full child environment as "KEY=value" pairs. Nil inherits
	// the parent environment.
	Env []string

	OutputMode OutputMode

	// Stdin, Stdout, and Stderr override the OutputMode's stream handling
	// when non-nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Option is a functional option for Run.
type Option func(*Config)

// WithArgs sets the command-line arguments (not including the command name).
func WithArgs(args ...string) Option {
	return func(c *Config) {
		c.Args = args
	}
}

// WithWorkingDir sets the working directory for the command.
func WithWorkingDir(dir string) Option {
	return func(c *Config) {
		c.WorkingDir = dir
	}
}

// WithEnv replaces the child environment with the provided "KEY=value" set.
func WithEnv(env []string) Option {
	return func(c *Config) {
		c.Env = env
	}
}

// WithInheritEnv inherits the current environment and appends or overrides
// the given "KEY=value" pairs.
func WithInheritEnv(additionalEnv ...string) Option {
	return func(c *Config) {
		c.Env = append(os.Environ(), additionalEnv...)
	}
}

// WithOutputMode sets how command output is handled.
func WithOutputMode(mode OutputMode) Option {
	return func(c *Config) {
		c.OutputMode = mode
	}
}

// WithStdin provides custom standard input for the command.
func WithStdin(stdin io.Reader) Option {
	return func(c *Config) {
		c.Stdin = stdin
	}
}

// WithStdout provides a custom writer for standard output.
func WithStdout(stdout io.Writer) Option {
	return func(c *Config) {
		c.Stdout = stdout
	}
}

// WithStderr provides a custom writer for standard error.
func WithStderr(stderr io.Writer) Option {
	return func(c *Config) {
		c.Stderr = stderr
	}
}

// Executor runs external commands. Implementations must be safe for
// concurrent use; each call creates an independent command instance.
type Executor interface {
	// Execute runs a command described by config and returns its result.
	// The result is returned even when err is non-nil.
	Execute(config *Config) (*Result, error)

	// ExecuteSimple runs a command with combined output capture.
	ExecuteSimple(ctx context.Context, command string, args ...string) (*Result, error)
}

// DefaultExecutor is the production Executor built on os/exec.
type DefaultExecutor struct{}

// NewExecutor returns the production executor.
func NewExecutor() Executor {
	return &DefaultExecutor{}
}

// Run executes a command with the given options and returns its result.
func Run(ctx context.Context, command string, opts ...Option) (*Result, error) {
	config := &Config{
		Context:    ctx,
		Command:    command,
		OutputMode: OutputModeCombined,
	}
	for _, opt := range opts {
		opt(config)
	}
	return NewExecutor().Execute(config)
}

// Execute runs the configured command, wiring output streams according to
// the output mode. Custom Stdout/Stderr writers take precedence over the
// mode's defaults.
func (e *DefaultExecutor) Execute(config *Config) (*Result, error) {
	if config.Context == nil {
		return nil, fmt.Errorf("context is required")
	}
	if config.Command == "" {
		return nil, fmt.Errorf("command is required")
	}

	cmd := exec.CommandContext(config.Context, config.Command, config.Args...)
	cmd.Dir = config.WorkingDir
	if config.Env != nil {
		cmd.Env = config.Env
	}
	if config.Stdin != nil {
		cmd.Stdin = config.Stdin
	}

	result := &Result{}
	var stdoutBuf, stderrBuf bytes.Buffer

	switch config.OutputMode {
	case OutputModeCapture:
		cmd.Stdout = teeWriter(&stdoutBuf, config.Stdout)
		cmd.Stderr = teeWriter(&stderrBuf, config.Stderr)

	case OutputModeCombined:
		if config.Stdout == nil && config.Stderr == nil {
			output, err := cmd.CombinedOutput()
			result.Combined = output
			result.Stdout = output
			result.Stderr = output
			result.Error = err
			result.ExitCode = exitCode(err)
			return result, result.Error
		}
		cmd.Stdout = teeWriter(&stdoutBuf, config.Stdout)
		cmd.Stderr = teeWriter(&stderrBuf, config.Stderr)

	case OutputModeStream:
		if config.Stdout != nil {
			cmd.Stdout = io.MultiWriter(&stdoutBuf, config.Stdout)
		} else {
			cmd.Stdout = io.MultiWriter(&stdoutBuf, os.Stdout)
		}
		if config.Stderr != nil {
			cmd.Stderr = io.MultiWriter(&stderrBuf, config.Stderr)
		} else {
			cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
		}

	case OutputModeDiscard:
		if config.Stdout != nil {
			cmd.Stdout = config.Stdout
		} else {
			cmd.Stdout = io.Discard
		}
		cmd.Stderr = teeWriter(&stderrBuf, config.Stderr)

	case OutputModeInteractive:
		if config.Stdin == nil {
			cmd.Stdin = os.Stdin
		}
		if config.Stdout != nil {
			cmd.Stdout = config.Stdout
		} else {
			cmd.Stdout = os.Stdout
		}
		if config.Stderr != nil {
			cmd.Stderr = config.Stderr
		} else {
			cmd.Stderr = os.Stderr
		}
	}

	result.Error = cmd.Run()
	result.Stdout = stdoutBuf.Bytes()
	result.Stderr = stderrBuf.Bytes()
	result.Combined = append(result.Stdout, result.Stderr...)
	result.ExitCode = exitCode(result.Error)

	return result, result.Error
}

// ExecuteSimple runs a command with combined output capture.
func (e *DefaultExecutor) ExecuteSimple(ctx context.Context, command string, args ...string) (*Result, error) {
	return e.Execute(&Config{
		Context:    ctx,
		Command:    command,
		Args:       args,
		OutputMode: OutputModeCombined,
	})
}

// teeWriter captures to buf and additionally writes to extra when set.
func teeWriter(buf *bytes.Buffer, extra io.Writer) io.Writer {
	if extra != nil {
		return io.MultiWriter(buf, extra)
	}
	return buf
}

// exitCode maps an execution error to an exit code: 0 on nil, the child's
// code for exit errors, -1 when the command could not be started.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
