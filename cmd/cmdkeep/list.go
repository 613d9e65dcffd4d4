// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/config"
)

var (
	listOutput string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved commands",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
)

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "output format: table, json, or yaml")
}

func runList(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(app, listOutput)
	if err != nil {
		return err
	}

	table, err := app.Registry.List()
	if err != nil {
		return err
	}
	shorts, err := app.Shortcuts.List()
	if err != nil {
		return err
	}
	warnDanglingShorts(app)

	if format != config.OutputTable {
		return renderStructured(app.Stdout, format, table)
	}

	if len(table) == 0 {
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("No saved commands yet. Try: cmdkeep save <name> <command>"))
		return nil
	}

	// Invert the short map for per-alias display.
	shortsFor := make(map[alias.Name][]string)
	for short, target := range shorts {
		shortsFor[target] = append(shortsFor[target], string(short))
	}

	names := make([]alias.Name, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	tw := newTable(app.Stdout)
	fmt.Fprintln(tw, "NAME\tCOMMAND\tDIRECTORY\tMODE\tSHORT")
	for _, name := range names {
		a := table[name]
		s := shortsFor[name]
		sort.Strings(s)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			name, a.Command, a.Directory, a.PathMode.Effective(), joinOrDash(s))
	}
	return tw.Flush()
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	out := items[0]
	for _, s := range items[1:] {
		out += "," + s
	}
	return out
}

// warnDanglingShorts surfaces short aliases whose target was deleted.
// They are tolerated, never errors.
func warnDanglingShorts(app *App) {
	dangling, err := app.Shortcuts.Dangling(app.Registry)
	if err != nil {
		return
	}
	for _, short := range dangling {
		fmt.Fprintln(app.Stderr, WarningStyle.Render("Warning: ")+
			fmt.Sprintf("short alias %q points to a deleted command (unlink it with 'cmdkeep unlink %s')", short, short))
	}
}
