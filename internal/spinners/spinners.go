// Package spinners shows progress for short tasks when a terminal is
// attached, falling back to plain text in verbose or non-interactive runs.
package spinners

import (
	"context"
	"fmt"

	"github.com/ansrun/ansrun/internal/styles"
	"github.com/ansrun/ansrun/internal/tty"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// VerboseMode disables the spinner UI in favor of plain messages.
var VerboseMode bool

// SetVerboseMode sets the verbose mode for all spinners. Without a TTY,
// verbose mode is forced so output stays readable in logs.
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose || !tty.IsInteractive()
}

// TaskFunc is the unit of work run behind a spinner.
type TaskFunc func() error

type taskDoneMsg struct {
	err error
}

type model struct {
	spinner spinner.Model
	message string
	task    TaskFunc
	err     error
	done    bool
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return taskDoneMsg{err: m.task()} },
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// RunTaskWithSpinnerContext runs task behind a spinner labelled with message.
// The context cancels the spinner UI; the task itself is expected to honor
// the same context.
func RunTaskWithSpinnerContext(ctx context.Context, message string, task TaskFunc) error {
	if VerboseMode {
		fmt.Println(message + "...")
		if err := task(); err != nil {
			fmt.Println(styles.ErrorStyle.Render("✗ " + message))
			return err
		}
		fmt.Println(styles.SuccessStyle.Render("✓ " + message))
		return nil
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.ColorMagenta))

	m := model{spinner: s, message: message, task: task}
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result := final.(model)
	if result.err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + message))
		return result.err
	}
	fmt.Println(styles.SuccessStyle.Render("✓ " + message))
	return nil
}
