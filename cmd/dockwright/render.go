// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dockwright/dockwright/internal/app/plan"
	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/extension/builtin"
	"github.com/dockwright/dockwright/internal/format"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errTooManyImages is returned when more than one positional argument
// precedes the `--` separator.
var errTooManyImages = errors.New("at most one base image may be given")

// renderFlags holds the render command's own flags. Extension flags live in
// a separate set so they can be told apart after parsing.
type renderFlags struct {
	format     string
	output     string
	engine     string
	noDefaults bool
	noCache    bool
}

func newRenderCommand(app *App) *cobra.Command {
	rf := &renderFlags{}
	extFlags := pflag.NewFlagSet("extensions", pflag.ContinueOnError)
	for _, ext := range builtin.Catalog(builtin.Options{Host: app.Host}) {
		ext.RegisterFlags(extFlags)
	}

	renderCmd := &cobra.Command{
		Use:   "render [IMAGE] [extension flags] [-- COMMAND...]",
		Short: "Generate the Dockerfile and container command lines",
		Long: `Generate a Dockerfile from IMAGE (default: base_image from the configuration)
and the extensions activated by flags or by extensions.defaults.

The Dockerfile, its content-derived image tag, the build command and the run
command are printed to stdout. With --output DIR the Dockerfile is written to
DIR/Dockerfile and the build command uses DIR as its context.

Everything after -- becomes the command run in the container.`,
		Example: `  dockwright render --user --home
  dockwright render debian:bookworm --env "LANG=C.UTF-8 TZ=UTC" -- bash -l
  dockwright render --pulse --devices /dev/dri --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return runRender(cmd, app, cfg, rf, extFlags, args)
		},
	}

	f := renderCmd.Flags()
	f.StringVarP(&rf.format, "format", "f", string(format.Text), "output format: text, json, yaml or toml")
	f.StringVarP(&rf.output, "output", "o", "", "write the Dockerfile to `DIR`")
	f.StringVar(&rf.engine, "engine", "", "container engine for the generated commands (docker or podman)")
	f.BoolVar(&rf.noDefaults, "no-defaults", false, "ignore extensions.defaults from the configuration")
	f.BoolVar(&rf.noCache, "no-cache", false, "add --no-cache to the build command")
	f.AddFlagSet(extFlags)

	return renderCmd
}

func runRender(cmd *cobra.Command, app *App, cfg *config.Config, rf *renderFlags, extFlags *pflag.FlagSet, args []string) error {
	outFormat := format.Format(rf.format)
	if err := outFormat.Validate(); err != nil {
		return err
	}

	positional, command := splitAtDash(args, cmd.ArgsLenAtDash())
	if len(positional) > 1 {
		return newServiceError(
			fmt.Errorf("%w, got %q", errTooManyImages, strings.Join(positional, " ")),
			0,
			fmt.Sprintf("  %s separate the container command with %s\n",
				WarningStyle.Render("•"), CmdStyle.Render("--")),
		)
	}

	baseImage := cfg.BaseImage
	if len(positional) == 1 {
		baseImage = positional[0]
	}
	engine := cfg.ContainerEngine
	if rf.engine != "" {
		engine = container.EngineType(rf.engine)
	}

	extArgs, err := extensionArgs(cmd.Flags(), extFlags)
	if err != nil {
		return err
	}

	var defaults []string
	if !rf.noDefaults {
		defaults = cfg.Extensions.Defaults
	}

	reg, err := app.registry(cfg)
	if err != nil {
		return err
	}

	opts := plan.Options{
		Registry:  reg,
		Args:      extArgs,
		Defaults:  defaults,
		BaseImage: baseImage,
		Engine:    engine,
		Command:   command,
		NoCache:   rf.noCache,
	}
	if rf.output != "" {
		opts.DockerfilePath = plan.DockerfilePath(rf.output)
		opts.ContextDir = rf.output
	}

	p, err := plan.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if rf.output != "" {
		path, writeErr := plan.WriteDockerfile(rf.output, p)
		if writeErr != nil {
			return writeErr
		}
		slog.Info("wrote Dockerfile", "path", path, "tag", p.Tag)
	}

	return plan.Write(cmd.OutOrStdout(), p, outFormat)
}

// splitAtDash separates positional arguments from the container command.
func splitAtDash(args []string, dash int) (positional, command []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// extensionArgs collects the parsed values of the flags declared in ext.
// Values are read from all, the command's merged flag set, because that is
// where cobra records which flags were set.
func extensionArgs(all, ext *pflag.FlagSet) (extension.Args, error) {
	args, err := extension.ArgsFromFlags(all)
	if err != nil {
		return nil, err
	}
	for key := range args {
		if ext.Lookup(extension.FlagName(key)) == nil {
			delete(args, key)
		}
	}
	slog.Debug("parsed extension flags", "args", args)
	return args, nil
}
