package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/deckgo/internal/ctxlog"
	"github.com/specialistvlad/deckgo/internal/units"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx      context.Context
	logger   *slog.Logger
	config   *Config
	registry *units.Registry
}

// NewApp is the constructor for the main application. It builds an isolated
// logger writing to logW and resolves the configured unit system.
func NewApp(ctx context.Context, logW io.Writer, cfg *Config) (*App, error) {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	reg, err := loadRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Unit system resolved.", "system", reg.Name(), "dimensions", len(reg.Dimensions()))

	return &App{
		ctx:      ctx,
		logger:   logger,
		config:   cfg,
		registry: reg,
	}, nil
}

// Registry returns the application's unit registry.
func (a *App) Registry() *units.Registry {
	return a.registry
}

// Context returns the application context carrying the logger.
func (a *App) Context() context.Context {
	return a.ctx
}
