// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/issue"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newExtensionsCommand creates the `dockwright extensions` command tree.
func newExtensionsCommand(app *App) *cobra.Command {
	extCmd := &cobra.Command{
		Use:     "extensions",
		Aliases: []string{"ext"},
		Short:   "List the available extensions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configOrDefault(cmd.Context())
			reg, err := app.registry(cfg)
			if err != nil {
				return err
			}
			return listExtensions(cmd.OutOrStdout(), reg, cfg.Extensions.Defaults)
		},
	}

	extCmd.AddCommand(&cobra.Command{
		Use:   "describe NAME",
		Short: "Show the help page of an extension",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			reg, err := app.registry(configOrDefault(cmd.Context()))
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return reg.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configOrDefault(cmd.Context())
			reg, err := app.registry(cfg)
			if err != nil {
				return err
			}
			return describeExtension(cmd.OutOrStdout(), reg, args[0], cfg.UI.ColorScheme)
		},
	})

	return extCmd
}

func listExtensions(w io.Writer, reg *extension.Registry, defaults []string) error {
	exts := reg.All()

	nameWidth, flagWidth := 0, 0
	for _, ext := range exts {
		nameWidth = max(nameWidth, len(ext.Name()))
		flagWidth = max(flagWidth, len(extension.NameToArgument(ext.Name())))
	}

	fmt.Fprintln(w, TitleStyle.Render("Available Extensions"))
	fmt.Fprintln(w)
	for _, ext := range exts {
		name := ext.Name()
		line := fmt.Sprintf("  %s  %s",
			listNameStyle.Width(nameWidth).Render(name),
			listFlagStyle.Width(flagWidth).Render(extension.NameToArgument(name)))
		if s := summary(ext); s != "" {
			line += "  " + listSummaryStyle.Render(s)
		}
		if slices.Contains(defaults, name) {
			line += " " + SuccessStyle.Render("(default)")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "%s\n", SubtitleStyle.Render("Run 'dockwright extensions describe NAME' for details."))
	return err
}

func describeExtension(w io.Writer, reg *extension.Registry, name string, scheme config.ColorScheme) error {
	ext, err := reg.Get(name)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("describe extension").
			WithResource(name).
			WithSuggestion("Available extensions: " + strings.Join(reg.Names(), ", ")).
			WithIssue(issue.ExtensionNotFoundId).
			Wrap(err).
			BuildError()
	}

	md := "# " + name + "\n\nActivated by `" + extension.NameToArgument(name) + "`.\n"
	if d, ok := ext.(extension.Describer); ok {
		md = d.Description()
	}

	rendered, err := glamour.Render(md, string(scheme))
	if err != nil {
		return fmt.Errorf("render description of %s: %w", name, err)
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

// summary returns the first paragraph line of an extension's description,
// skipping Markdown headings.
func summary(ext extension.Extension) string {
	d, ok := ext.(extension.Describer)
	if !ok {
		return ""
	}
	for line := range strings.SplitSeq(d.Description(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return line
		}
	}
	return ""
}
