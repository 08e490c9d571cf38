package executor

import (
	"context"
	"fmt"
	"strings"
)

// MockExecutor is a test double for Executor. It records every call so tests
// can assert on the exact launch configuration.
type MockExecutor struct {
	// ExecuteFunc, when set, supplies the result for each Execute call.
	ExecuteFunc func(config *Config) (*Result, error)
	// Calls tracks all Execute invocations in order.
	Calls []MockCall
}

// MockCall is one recorded Execute invocation.
type MockCall struct {
	Config *Config
	Result *Result
	Error  error
}

// NewMockExecutor returns an empty mock that reports success by default.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// WithResult configures the mock to return a fixed result and error.
func (m *MockExecutor) WithResult(result *Result, err error) *MockExecutor {
	m.ExecuteFunc = func(*Config) (*Result, error) {
		return result, err
	}
	return m
}

// Execute records the call and returns the configured result, or a
// zero-exit success when no behavior was configured.
func (m *MockExecutor) Execute(config *Config) (*Result, error) {
	var result *Result
	var err error

	if m.ExecuteFunc != nil {
		result, err = m.ExecuteFunc(config)
	} else {
		result = &Result{ExitCode: 0, Combined: []byte("mock output")}
	}

	m.Calls = append(m.Calls, MockCall{Config: config, Result: result, Error: err})
	return result, err
}

// ExecuteSimple records the call like Execute.
func (m *MockExecutor) ExecuteSimple(ctx context.Context, command string, args ...string) (*Result, error) {
	return m.Execute(&Config{
		Context:    ctx,
		Command:    command,
		Args:       args,
		OutputMode: OutputModeCombined,
	})
}

// CommandLines renders the recorded calls as "command arg arg" strings for
// simple assertions.
func (m *MockExecutor) CommandLines() []string {
	lines := make([]string, len(m.Calls))
	for i, call := range m.Calls {
		lines[i] = fmt.Sprintf("%s %s", call.Config.Command, strings.Join(call.Config.Args, " "))
	}
	return lines
}
