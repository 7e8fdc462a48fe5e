// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/extension/builtin"
	"github.com/dockwright/dockwright/internal/hostenv"
)

type (
	configContextKey struct{}

	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: all Cobra command handlers receive an App reference and
	// reach configuration and host introspection through it.
	App struct {
		Config ConfigProvider
		Host   hostenv.Provider
		stdout io.Writer
		stderr io.Writer

		// Set by the root command before any subcommand runs.
		verbose     bool
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Host   hostenv.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// configResult is the outcome of the root command's configuration load.
	// A failed load is kept so that commands which need no configuration
	// (config init, config path, version) still run.
	configResult struct {
		cfg *config.Config
		err error
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Host == nil {
		deps.Host = hostenv.NewCached(hostenv.NewOS())
	}

	return &App{
		Config:      deps.Config,
		Host:        deps.Host,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		colorScheme: config.ColorSchemeAuto,
	}
}

// registry builds the extension registry configured by cfg.
func (a *App) registry(cfg *config.Config) (*extension.Registry, error) {
	return builtin.NewRegistry(builtin.Options{
		Host:              a.Host,
		DevHelperPackages: cfg.Extensions.DevHelpers.Packages,
	})
}

func contextWithConfig(ctx context.Context, cfg *config.Config, err error) context.Context {
	return context.WithValue(ctx, configContextKey{}, configResult{cfg: cfg, err: err})
}

// configFromContext returns the configuration loaded by the root command,
// or its load error.
func configFromContext(ctx context.Context) (*config.Config, error) {
	res, ok := ctx.Value(configContextKey{}).(configResult)
	if !ok {
		return config.DefaultConfig(), nil
	}
	return res.cfg, res.err
}

// configOrDefault is configFromContext for commands that stay usable with a
// broken configuration file.
func configOrDefault(ctx context.Context) *config.Config {
	cfg, err := configFromContext(ctx)
	if err != nil {
		slog.Warn("using default configuration", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}
