// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/dockerfile"
	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/issue"

	"mvdan.cc/sh/v3/syntax"
)

// StdinDockerfile is the build file argument used when the Dockerfile is
// piped to the engine instead of written to disk.
const StdinDockerfile = "-"

// ErrNoRegistry is returned by Build when Options.Registry is nil.
var ErrNoRegistry = errors.New("extension registry is required")

type (
	// Options configures Build.
	//
	// Registry and BaseImage are required. All other fields are optional.
	Options struct {
		Registry *extension.Registry
		// Args are the parsed extension flags, keyed by argument key.
		Args extension.Args
		// Defaults names extensions activated unless Args sets them explicitly.
		Defaults []string
		BaseImage string
		// Engine defaults to docker.
		Engine  container.EngineType
		Command []string
		NoCache bool
		// DockerfilePath is the -f argument of the build command. Empty means
		// the Dockerfile is read from stdin.
		DockerfilePath string
		ContextDir     string
	}

	// Plan is the outcome of Build.
	Plan struct {
		BaseImage    string   `json:"base_image" yaml:"base_image" toml:"base_image"`
		Extensions   []string `json:"extensions" yaml:"extensions" toml:"extensions"`
		Tag          string   `json:"tag" yaml:"tag" toml:"tag"`
		DockerArgs   string   `json:"docker_args" yaml:"docker_args" toml:"docker_args"`
		BuildCommand string   `json:"build_command" yaml:"build_command" toml:"build_command"`
		RunCommand   string   `json:"run_command" yaml:"run_command" toml:"run_command"`
		RunArgv      []string `json:"run_argv" yaml:"run_argv" toml:"run_argv"`
		Dockerfile   string   `json:"dockerfile" yaml:"dockerfile" toml:"dockerfile"`
	}
)

// ApplyDefaults returns a copy of args where every name in defaults is
// activated, unless args already holds a value for it. An explicit
// `--home=false` therefore turns a configured default off.
func ApplyDefaults(reg *extension.Registry, args extension.Args, defaults []string) (extension.Args, error) {
	out := args.Clone()
	for _, name := range defaults {
		if _, err := reg.Get(name); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("activate default extensions").
				WithResource(name).
				WithSuggestion("Available extensions: " + strings.Join(reg.Names(), ", ")).
				WithSuggestion("Fix extensions.defaults in your configuration").
				WithIssue(issue.ExtensionNotFoundId).
				Wrap(err).
				BuildError()
		}
		if _, set := out[name]; !set {
			out[name] = true
		}
	}
	return out, nil
}

// Build composes the active extensions, assembles the Dockerfile and
// generates the build and run command lines.
func Build(ctx context.Context, opts Options) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}

	engine := opts.Engine
	if engine == "" {
		engine = container.EngineTypeDocker
	}
	if err := engine.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("generate container commands").
			WithResource(string(engine)).
			WithIssue(issue.InvalidContainerEngineId).
			Wrap(err).
			BuildError()
	}

	args, err := ApplyDefaults(opts.Registry, opts.Args, opts.Defaults)
	if err != nil {
		return nil, err
	}

	active := opts.Registry.Active(args)
	comp, err := extension.Compose(active, args)
	if err != nil {
		return nil, composeError(err)
	}
	slog.Debug("composed extensions", "extensions", comp.Names())

	df, err := dockerfile.Assemble(opts.BaseImage, comp)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("assemble Dockerfile").
			WithSuggestion("Pass a base image: dockwright render IMAGE").
			WithSuggestion("Or set base_image in your configuration").
			Wrap(err).
			BuildError()
	}
	tag := dockerfile.ImageTag(df)

	dfPath := opts.DockerfilePath
	if dfPath == "" {
		dfPath = StdinDockerfile
	}
	build := container.BuildCommand{
		Engine:     engine,
		Tag:        tag,
		Dockerfile: dfPath,
		ContextDir: opts.ContextDir,
		NoCache:    opts.NoCache,
	}
	buildLine, err := build.String()
	if err != nil {
		return nil, fmt.Errorf("generate build command: %w", err)
	}

	run := container.RunCommand{
		Engine:      engine,
		Image:       tag,
		DockerArgs:  comp.DockerArgs(),
		Command:     opts.Command,
		Interactive: true,
		Remove:      true,
	}
	runArgv, err := run.Argv()
	if err != nil {
		return nil, fmt.Errorf("generate run command: %w", err)
	}
	runLine, err := run.String()
	if err != nil {
		return nil, fmt.Errorf("generate run command: %w", err)
	}

	return &Plan{
		BaseImage:    opts.BaseImage,
		Extensions:   comp.Names(),
		Tag:          tag,
		DockerArgs:   comp.DockerArgs(),
		BuildCommand: buildLine,
		RunCommand:   runLine,
		RunArgv:      runArgv,
		Dockerfile:   df,
	}, nil
}

// composeError attaches guidance to an extension failure. Quoting failures
// and rejected values come from arguments; everything else comes from host
// lookups.
func composeError(err error) error {
	ctx := issue.NewErrorContext().WithOperation("compose extensions").Wrap(err)

	var qe *syntax.QuoteError
	if errors.As(err, &qe) || errors.Is(err, extension.ErrInvalidArgument) {
		return ctx.
			WithSuggestion("Check the values passed to extension flags").
			WithIssue(issue.InvalidExtensionArgsId).
			BuildError()
	}
	return ctx.
		WithSuggestion("Run again with --verbose to see which extension failed").
		WithIssue(issue.HostIdentityUnavailableId).
		BuildError()
}
