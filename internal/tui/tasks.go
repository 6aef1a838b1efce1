package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc/panics"

	"github.com/weblarek/larek/internal/loop"
)

// resumeMsg carries a task's continuation back to Update, which runs it on
// the UI goroutine.
type resumeMsg struct {
	resume func()
	err    error
}

// taskCmd runs t off the UI goroutine. A panicking task is reported as an
// error instead of taking the program down.
func taskCmd(ctx context.Context, t loop.Task) tea.Cmd {
	return func() tea.Msg {
		var (
			pc     panics.Catcher
			resume func()
		)
		pc.Try(func() { resume = t(ctx) })
		if r := pc.Recovered(); r != nil {
			return resumeMsg{err: r.AsError()}
		}
		return resumeMsg{resume: resume}
	}
}
