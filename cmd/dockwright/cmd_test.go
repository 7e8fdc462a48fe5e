// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/hostenv"
)

type stubConfigProvider struct {
	cfg *config.Config
	err error
}

func (s stubConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

func testHost() *hostenv.Static {
	return &hostenv.Static{
		ID: hostenv.Identity{
			UID: 1000, GID: 1000, Name: "dev", Dir: "/home/dev",
			Gecos: "Dev Eloper,,,", Shell: "/bin/bash",
		},
		Groups: map[string]int{"audio": 29},
	}
}

// runCLI executes the command tree without fang and returns the captured
// output. Tests using it must not run in parallel: the root command
// installs the process-wide slog default.
func runCLI(t *testing.T, deps Dependencies, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out, errOut bytes.Buffer
	deps.Stdout, deps.Stderr = &out, &errOut
	if deps.Host == nil {
		deps.Host = testHost()
	}
	if deps.Config == nil {
		deps.Config = stubConfigProvider{cfg: config.DefaultConfig()}
	}

	rootCmd := NewRootCommand(NewApp(deps))
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func withConfig(mutate func(*config.Config)) Dependencies {
	cfg := config.DefaultConfig()
	mutate(cfg)
	return Dependencies{Config: stubConfigProvider{cfg: cfg}}
}
