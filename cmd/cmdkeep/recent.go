// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/config"
)

var (
	recentRaw    bool
	recentClear  bool
	recentLimit  int
	recentOutput string

	recentCmd = &cobra.Command{
		Use:   "recent",
		Short: "Show recently run commands",
		Long: `Show recently run commands, newest first, deduplicated by name.

The position shown next to each name is its @N reference for 'cmdkeep
run'. With --raw every execution is listed with its timestamp, repeats
included.`,
		Args: cobra.NoArgs,
		RunE: runRecent,
	}
)

func init() {
	recentCmd.Flags().BoolVar(&recentRaw, "raw", false, "show every execution with timestamps, repeats included")
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "clear the execution log")
	recentCmd.Flags().IntVar(&recentLimit, "limit", 0, "show at most this many entries (0 = all)")
	recentCmd.Flags().StringVarP(&recentOutput, "output", "o", "", "output format: table, json, or yaml")
}

func runRecent(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if recentClear {
		if err := app.Recent.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(app.Stdout, SuccessStyle.Render("Cleared")+" execution log")
		return nil
	}

	format, err := resolveOutputFormat(app, recentOutput)
	if err != nil {
		return err
	}

	if recentRaw {
		return renderRecentRaw(app, format)
	}
	return renderRecentDeduplicated(app, format)
}

func renderRecentRaw(app *App, format config.OutputFormat) error {
	entries, err := app.Recent.ListRaw()
	if err != nil {
		return err
	}
	if recentLimit > 0 && len(entries) > recentLimit {
		entries = entries[:recentLimit]
	}

	if format != config.OutputTable {
		return renderStructured(app.Stdout, format, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("No executions recorded yet."))
		return nil
	}
	tw := newTable(app.Stdout)
	fmt.Fprintln(tw, "EXECUTED\tNAME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.ExecutedAt.Format("2006-01-02 15:04:05"), e.CommandName)
	}
	return tw.Flush()
}

func renderRecentDeduplicated(app *App, format config.OutputFormat) error {
	names, err := app.Recent.ListDeduplicated(recentLimit)
	if err != nil {
		return err
	}

	if format != config.OutputTable {
		return renderStructured(app.Stdout, format, names)
	}
	if len(names) == 0 {
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("No executions recorded yet."))
		return nil
	}
	tw := newTable(app.Stdout)
	fmt.Fprintln(tw, "REF\tNAME")
	for i, name := range names {
		fmt.Fprintf(tw, "@%d\t%s\n", i, name)
	}
	return tw.Flush()
}
