// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/logging"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	configPath string
	logFormat  string
}

// NewRootCommand builds the dockwright command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dockwright",
		Short: "Compose container images from small, flag-activated extensions",
		Long: TitleStyle.Render("dockwright") + SubtitleStyle.Render(" - Compose container images from small, flag-activated extensions") + `

Each extension is switched on by one command-line flag and contributes a
fragment before FROM, a fragment after FROM and extra arguments for the
container run command. dockwright prints the generated Dockerfile, a
content-derived image tag and the docker/podman command lines; it never
runs the container engine itself.

` + SubtitleStyle.Render("Examples:") + `
  dockwright extensions                           List available extensions
  dockwright render --user --home                 Image with your user and home
  dockwright render ubuntu:24.04 --x11 -- xclock  Run an X11 client
  dockwright render --output build/ --format json Write build/Dockerfile
  dockwright config show                          Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.initCommand(cmd, flags)
		},
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/dockwright/config.cue)")
	pf.StringVar(&flags.logFormat, "log-format", string(logging.FormatText), "log output format: text, json or logfmt")

	rootCmd.AddCommand(newRenderCommand(app))
	rootCmd.AddCommand(newExtensionsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// initCommand loads configuration, applies its UI settings and installs the
// process logger. A configuration error is recorded in the command context
// rather than returned; commands that need configuration surface it.
func (a *App) initCommand(cmd *cobra.Command, flags *rootFlags) error {
	cfg, cfgErr := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})

	a.verbose = flags.verbose
	if cfgErr == nil {
		a.verbose = a.verbose || cfg.UI.Verbose
		a.colorScheme = cfg.UI.ColorScheme
	}

	logFormat := logging.Format(flags.logFormat)
	if err := logging.Setup(a.stderr, logging.Options{
		Format:     logFormat,
		Verbose:    a.verbose,
		Timestamps: logFormat.Structured(),
	}); err != nil {
		return err
	}

	if cfgErr != nil {
		slog.Debug("configuration not loaded", "error", cfgErr)
	} else if cfg.Source != "" {
		slog.Debug("configuration loaded", "path", cfg.Source)
	}

	cmd.SetContext(contextWithConfig(cmd.Context(), cfg, cfgErr))
	return nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// handleError prints err with fang's styling, then the suggestions and issue
// guidance attached to it.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	fang.DefaultErrorHandler(w, styles, err)
	renderServiceError(w, asServiceError(err, a.verbose), a.colorScheme)
}

// Execute runs the command tree for args.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := NewRootCommand(a)
	rootCmd.SetArgs(args)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(a.handleError),
	)
}

// Execute builds the production App and runs it with the process arguments.
// This is called by main.main().
func Execute() {
	if err := NewApp(Dependencies{}).Execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
