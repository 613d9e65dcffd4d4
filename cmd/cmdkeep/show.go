// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/config"
	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/runtime"
)

var (
	showOutput string

	showCmd = &cobra.Command{
		Use:   "show <name|short>",
		Short: "Show one saved command in detail",
		Long: `Show a saved command's text, directory, path mode, environment
snapshot, and timestamps. Sensitive-looking environment values are
masked for display; the real values are still used when running.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "output format: table, json, or yaml")
}

func runShow(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(app, showOutput)
	if err != nil {
		return err
	}

	name, err := app.Shortcuts.Resolve(alias.Name(args[0]))
	if err != nil {
		return err
	}
	a, ok, err := app.Registry.Get(name)
	if err != nil {
		return err
	}
	if !ok {
		return issue.NewErrorContext().
			WithOperation("show command").
			WithResource(args[0]).
			WithSuggestion("Run 'cmdkeep list' to see saved commands").
			Wrap(fmt.Errorf("%q: %w", args[0], issue.ErrNotFound)).
			BuildError()
	}

	if format != config.OutputTable {
		return renderStructured(app.Stdout, format, map[alias.Name]alias.CommandAlias{name: a})
	}

	fmt.Fprintln(app.Stdout, TitleStyle.Render(string(name)))
	fmt.Fprintf(app.Stdout, "  %s %s\n", SubtitleStyle.Render("command:"), CmdStyle.Render(a.Command))
	fmt.Fprintf(app.Stdout, "  %s %s\n", SubtitleStyle.Render("directory:"), a.Directory)
	fmt.Fprintf(app.Stdout, "  %s %s\n", SubtitleStyle.Render("path mode:"), a.PathMode.Effective())
	if len(a.Env) > 0 {
		fmt.Fprintf(app.Stdout, "  %s\n", SubtitleStyle.Render("environment:"))
		keys := make([]string, 0, len(a.Env))
		for k := range a.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(app.Stdout, "    %s=%s\n", k, runtime.MaskValue(k, a.Env[k]))
		}
	}
	fmt.Fprintf(app.Stdout, "  %s %s\n", SubtitleStyle.Render("created:"), a.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(app.Stdout, "  %s %s\n", SubtitleStyle.Render("updated:"), a.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
