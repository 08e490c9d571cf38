package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecuteSimple(t *testing.T) {
	e := NewExecutor()
	result, err := e.ExecuteSimple(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", result.ExitCode)
	}
	if !strings.Contains(string(result.Combined), "hello") {
		t.Errorf("expected hello in output, got %q", result.Combined)
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	e := NewExecutor()
	result, err := e.ExecuteSimple(context.Background(), "sh", "-c", "exit 3")
	if err == nil {
		t.Fatal("expected an error for a non-zero exit")
	}
	if result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", result.ExitCode)
	}
}

func TestExecuteCommandNotFound(t *testing.T) {
	e := NewExecutor()
	result, err := e.ExecuteSimple(context.Background(), "definitely-not-a-command-xyz")
	if err == nil {
		t.Fatal("expected an error for a missing command")
	}
	if result.ExitCode != -1 {
		t.Errorf("expected exit code -1, got %d", result.ExitCode)
	}
}

func TestExecuteWorkingDir(t *testing.T) {
	dir := t.TempDir()
	result, err := Run(context.Background(), "pwd", WithWorkingDir(dir))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(result.Combined), dir) {
		t.Errorf("expected %q in output, got %q", dir, result.Combined)
	}
}

func TestExecuteEnv(t *testing.T) {
	result, err := Run(context.Background(), "sh",
		WithArgs("-c", "echo $ANSRUN_TEST_VAR"),
		WithEnv([]string{"ANSRUN_TEST_VAR=probe", "PATH=/usr/bin:/bin"}),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(result.Combined), "probe") {
		t.Errorf("expected env var in output, got %q", result.Combined)
	}
}

func TestExecuteCaptureMode(t *testing.T) {
	result, err := Run(context.Background(), "sh",
		WithArgs("-c", "echo out; echo err >&2"),
		WithOutputMode(OutputModeCapture),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(result.Stdout), "out") {
		t.Errorf("expected stdout captured, got %q", result.Stdout)
	}
	if !strings.Contains(string(result.Stderr), "err") {
		t.Errorf("expected stderr captured, got %q", result.Stderr)
	}
}

func TestExecuteStreamModeWithWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	result, err := Run(context.Background(), "sh",
		WithArgs("-c", "echo out; echo err >&2"),
		WithOutputMode(OutputModeStream),
		WithStdout(&out),
		WithStderr(&errOut),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "out") {
		t.Errorf("expected stdout streamed to the writer, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "err") {
		t.Errorf("expected stderr streamed to the writer, got %q", errOut.String())
	}
	if !strings.Contains(string(result.Stdout), "out") {
		t.Errorf("expected stdout also captured, got %q", result.Stdout)
	}
}

func TestExecuteStdin(t *testing.T) {
	result, err := Run(context.Background(), "cat", WithStdin(strings.NewReader("piped")))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(result.Combined), "piped") {
		t.Errorf("expected stdin echoed, got %q", result.Combined)
	}
}

func TestExecuteContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, "sleep", WithArgs("10"))
	if err == nil {
		t.Fatal("expected an error on context cancellation")
	}
}

func TestExecuteRequiresContextAndCommand(t *testing.T) {
	e := NewExecutor()
	if _, err := e.Execute(&Config{Command: "echo"}); err == nil {
		t.Error("expected an error without a context")
	}
	if _, err := e.Execute(&Config{Context: context.Background()}); err == nil {
		t.Error("expected an error without a command")
	}
}

func TestMockExecutorRecordsCalls(t *testing.T) {
	mock := NewMockExecutor()
	if _, err := mock.ExecuteSimple(context.Background(), "ansible-playbook", "site.yml"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected one recorded call, got %d", len(mock.Calls))
	}
	lines := mock.CommandLines()
	if len(lines) != 1 || lines[0] != "ansible-playbook site.yml" {
		t.Errorf("unexpected command lines %v", lines)
	}
}
