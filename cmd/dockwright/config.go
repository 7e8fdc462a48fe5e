// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/format"

	"github.com/spf13/cobra"
)

// formatCUE prints the configuration as a CUE file for `config show`.
const formatCUE format.Format = "cue"

// newConfigCommand creates the `dockwright config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dockwright configuration",
		Long: `Manage dockwright configuration.

Configuration is read from the first of:
  - the file given with --config
  - $XDG_CONFIG_HOME/dockwright/config.cue (usually ~/.config/dockwright/config.cue)
  - ./config.cue

DOCKWRIGHT_* environment variables override file values, for example
DOCKWRIGHT_CONTAINER_ENGINE=podman or DOCKWRIGHT_EXTENSIONS_DEFAULTS=user,home.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return showConfig(cmd.OutOrStdout(), cfg, format.Format(showFormat))
		},
	}
	showCmd.Flags().StringVarP(&showFormat, "format", "f", string(format.Text), "output format: text, cue, json, yaml or toml")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout())
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, f format.Format) error {
	switch f {
	case format.Text:
		return showConfigText(w, cfg)
	case formatCUE:
		_, err := fmt.Fprint(w, config.GenerateCUE(cfg))
		return err
	default:
		return format.Encode(w, cfg, f)
	}
}

func showConfigText(w io.Writer, cfg *config.Config) error {
	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("container_engine"), valueStyle.Render(string(cfg.ContainerEngine)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("base_image"), valueStyle.Render(cfg.BaseImage))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("extensions"))
	if len(cfg.Extensions.Defaults) == 0 {
		fmt.Fprintf(w, "  defaults: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Fprintf(w, "  defaults: %s\n", valueStyle.Render(strings.Join(cfg.Extensions.Defaults, ", ")))
	}
	fmt.Fprintf(w, "  dev_helpers.packages: %s\n", valueStyle.Render(strings.Join(cfg.Extensions.DevHelpers.Packages, ", ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	_, err := fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	return err
}

func initConfig(w io.Writer) error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
	return err
}

func showConfigPath(w io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgFile, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	_, err = fmt.Fprintf(w, "Config file: %s\n", cfgFile)
	return err
}
