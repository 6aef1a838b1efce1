package cmd

import (
	"fmt"
	"time"

	"github.com/weblarek/larek/internal/api"
	"github.com/weblarek/larek/internal/config"
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/loop"
	"github.com/weblarek/larek/internal/presenter"
	"github.com/weblarek/larek/internal/view"
	"github.com/weblarek/larek/internal/web"
)

// retryDelay is the base backoff between catalog retries.
const retryDelay = 300 * time.Millisecond

// storefront is the wired page: document, bus, models, views and presenter.
// Tasks the presenter starts are queued on queue for the host to run.
type storefront struct {
	doc       *dom.Document
	presenter *presenter.Presenter
	queue     *loop.Queue
}

func newStorefront(cfg *config.Config, logger *logging.Logger) (*storefront, error) {
	client, err := api.NewClient(cfg.API.URL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetry(api.RetryConfig{MaxRetries: cfg.API.Retries, Delay: retryDelay}),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	doc, err := web.Load()
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	f := view.NewFormatterFor(cfg.TUI.Locale)
	bus := event.NewBus(event.WithLogger(logger))
	views, err := presenter.BindViews(doc, bus, f)
	if err != nil {
		return nil, fmt.Errorf("binding views: %w", err)
	}

	queue := loop.NewQueue()
	p := presenter.New(presenter.Deps{
		Bus:       bus,
		Doc:       doc,
		Shop:      api.NewShopAPI(client, cfg.CDN.URL),
		Runner:    queue,
		Logger:    logger,
		Formatter: f,
	}, presenter.NewModels(bus), views)

	return &storefront{doc: doc, presenter: p, queue: queue}, nil
}

// newLogger opens the configured log. With no log directory, interactive
// commands discard logs (the terminal belongs to the UI) and headless ones
// write to stderr.
func newLogger(cfg *config.Config, interactive bool) (*logging.Logger, error) {
	if cfg.Logging.Dir == "" && interactive {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	return logger, nil
}
