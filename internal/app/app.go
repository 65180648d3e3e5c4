package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/fnguard/internal/ctxlog"
	"github.com/vk/fnguard/internal/env"
	"github.com/vk/fnguard/internal/instrument"
	"github.com/vk/fnguard/internal/origstore"
	"github.com/vk/fnguard/internal/schema"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	env        *env.Env
	store      *origstore.Store
	controller *instrument.Controller
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// environment. Modules default to the compiled-in core set.
func NewApp(outW io.Writer, cfg *Config, modules ...env.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	environment := env.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(environment)
	}
	logger.Debug("All function modules registered.", "count", len(modules))

	if cfg.ContractsPath != "" {
		if err := environment.Contracts.LoadPath(ctx, cfg.ContractsPath); err != nil {
			// A failure to load contracts is a fatal startup error.
			panic(fmt.Errorf("failed to load contract manifests: %w", err))
		}
	}

	// Validate the integrity of the environment: a mismatch between a
	// declared contract and the Go implementation is a programmer error.
	if err := validateEnv(ctx, environment); err != nil {
		panic(err)
	}
	logger.Debug("Environment validation passed.")

	store := origstore.New()
	return &App{
		outW:       outW,
		logger:     logger,
		env:        environment,
		store:      store,
		controller: instrument.New(environment.Contracts, environment.Bindings, store, schema.CtyService{}),
	}
}

// Env returns the application's environment. This is primarily for testing.
func (a *App) Env() *env.Env {
	return a.env
}

// Controller returns the instrumentation controller. This is primarily for
// testing.
func (a *App) Controller() *instrument.Controller {
	return a.controller
}
