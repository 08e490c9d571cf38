package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ansrun/ansrun/cmd"
	"github.com/ansrun/ansrun/internal/signals"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// customErrorHandler renders errors line by line so multi-line messages
// (runner exit summaries, validation errors) keep their formatting instead
// of being re-wrapped by fang's default handler.
func customErrorHandler(w io.Writer, styles fang.Styles, err error) {
	fmt.Fprintf(w, "%s\n", styles.ErrorHeader.String())

	errorText := err.Error()
	lines := strings.SplitSeq(errorText, "\n")

	for line := range lines {
		if line != "" {
			lineStyle := styles.ErrorText.UnsetTransform().UnsetWidth()
			fmt.Fprintf(w, "%s\n", lineStyle.Render(line))
		} else {
			fmt.Fprintf(w, "\n")
		}
	}

	if !strings.HasSuffix(errorText, "\n") {
		fmt.Fprintf(w, "\n")
	}
}

func main() {
	// Color profile is process-local; override with ANSRUN_COLOR_PROFILE.
	// Valid values: truecolor, ansi256, ansi, ascii.
	switch os.Getenv("ANSRUN_COLOR_PROFILE") {
	case "ansi256":
		_ = os.Setenv("COLORTERM", "256color")
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "ascii":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		_ = os.Setenv("COLORTERM", "truecolor")
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	// Initialize the global signal manager and get the application context.
	sigManager := signals.GetGlobalManager()
	ctx := sigManager.Context()

	if err := fang.Execute(ctx, cmd.GetRootCommand(),
		fang.WithErrorHandler(customErrorHandler),
	); err != nil {
		os.Exit(1)
	}

	if sigManager.IsShutdown() {
		os.Exit(sigManager.ExitCode())
	}

	os.Exit(0)
}
