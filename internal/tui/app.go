// Package tui is the terminal front end of the storefront. It draws the
// page document with lipgloss and turns key presses into document events.
package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/weblarek/larek/internal/errors"
	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/loop"
	"github.com/weblarek/larek/internal/presenter"
)

// App wraps the Bubbletea program
type App struct {
	program   *tea.Program
	presenter *presenter.Presenter
	queue     *loop.Queue
	logger    *logging.Logger
}

// New creates a new TUI application. The presenter must schedule its
// tasks on queue.
func New(p *presenter.Presenter, queue *loop.Queue, logger *logging.Logger) *App {
	return &App{presenter: p, queue: queue, logger: logger}
}

// Run starts the TUI application and blocks until the user quits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.program = tea.NewProgram(
		NewModel(ctx, a.presenter, a.queue, a.logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			a.program.Quit()
		case <-ctx.Done():
		}
	}()

	_, err := a.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
