package logging

import "fmt"

// Debug prints a message with the DEBUG prefix if verbosity level is greater than 0.
//
// Usage:
//
//	logging.Debug(verbosity, "resolved executable %s", exe)
func Debug(verbosity int, format string, args ...interface{}) {
	if verbosity > 0 {
		message := fmt.Sprintf(format, args...)
		fmt.Printf("DEBUG: %s\n", message)
	}
}

// DebugBool prints a debug message when verbose mode is enabled.
// This variant accepts a boolean flag instead of an integer verbosity level.
func DebugBool(verbose bool, format string, args ...interface{}) {
	if verbose {
		message := fmt.Sprintf(format, args...)
		fmt.Printf("DEBUG: %s\n", message)
	}
}

// Trace prints a message with the TRACE prefix if verbosity level is greater than 1.
// Trace output is for deep troubleshooting and typically includes raw data dumps.
func Trace(verbosity int, format string, args ...interface{}) {
	if verbosity > 1 {
		message := fmt.Sprintf(format, args...)
		fmt.Printf("TRACE: %s\n", message)
	}
}
