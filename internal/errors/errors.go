package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ansrun/ansrun/internal/signals"
)

// IsInterruptError checks if an error is due to user interrupt (Ctrl+C).
// It detects context cancellation and signal-based termination.
func IsInterruptError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		strings.Contains(err.Error(), "signal: killed") ||
		strings.Contains(err.Error(), "signal: interrupt")
}

// HandleInterruptError checks if the error is from a user interrupt and triggers
// shutdown via the signal manager. Returns true if shutdown was initiated.
func HandleInterruptError(err error) bool {
	if IsInterruptError(err) {
		sigManager := signals.GetGlobalManager()
		sigManager.Shutdown(130) // Standard exit code for SIGINT (128 + 2)
		return true
	}
	return false
}

// ExitWithError prints an error message and triggers shutdown via the signal
// manager with exit code 1. Use instead of direct os.Exit(1) calls so cleanup
// still runs.
func ExitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	sigManager := signals.GetGlobalManager()
	sigManager.Shutdown(1)
}
