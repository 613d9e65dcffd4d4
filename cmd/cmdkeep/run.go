// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	appexec "github.com/cmdkeep/cmdkeep/internal/app/execute"
)

var (
	runPathOverride string
	runDryRun       bool

	runCmd = &cobra.Command{
		Use:   "run <name|short|@N>",
		Short: "Run a saved command",
		Long: `Run a saved command by name, short alias, or @N recent reference.

The command runs in its saved directory (or the current one, per its
path mode), with the saved environment snapshot merged under the live
session environment. Live values always win on conflict. The command's
own exit code becomes cmdkeep's exit code.`,
		Example: `  cmdkeep run build
  cmdkeep run b                Short alias
  cmdkeep run @0               Most recent command
  cmdkeep run build --path .   Run here instead of the saved directory
  cmdkeep run deploy -n        Preview without executing`,
		Args: cobra.ExactArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVarP(&runPathOverride, "path", "p", "", "working directory override (wins over the saved path mode)")
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false, "preview the resolved command without executing it")
}

func runRun(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine current directory: %w", err)
	}

	orch := app.Orchestrator()
	orch.OnResolved = func(r *appexec.RunReport) {
		if !r.DryRun {
			warnOverrides(app, r)
		}
	}
	report, err := orch.Run(args[0], appexec.RunOptions{
		Cwd:          cwd,
		PathOverride: runPathOverride,
		DryRun:       runDryRun,
		Verbose:      verbose,
		Context:      cobraCmd.Context(),
	})
	if err != nil {
		return err
	}

	if report.DryRun {
		renderPreview(app, report)
		return nil
	}

	return childExit(report.ExitCode)
}

// renderPreview prints what a run would do, without doing it.
func renderPreview(app *App, report *appexec.RunReport) {
	fmt.Fprintln(app.Stdout, TitleStyle.Render("Dry run")+SubtitleStyle.Render(" - nothing was executed"))
	fmt.Fprintf(app.Stdout, "  %s %s\n", SubtitleStyle.Render("command:"), CmdStyle.Render(report.Alias.Command))
	fmt.Fprintf(app.Stdout, "  %s %s %s\n",
		SubtitleStyle.Render("directory:"),
		report.WorkDir,
		VerboseStyle.Render("("+string(report.WorkDirSource)+")"))
	fmt.Fprintf(app.Stdout, "  %s %d variable(s)\n", SubtitleStyle.Render("environment:"), len(report.Env))

	for _, ov := range report.Overrides {
		fmt.Fprintf(app.Stdout, "  %s %s: saved value shadowed by live session\n",
			WarningStyle.Render("override"), ov.Name)
	}
	if verbose {
		names := make([]string, 0, len(report.Env))
		for name := range report.Env {
			names = append(names, name)
		}
		sort.Strings(names)
		masked := report.Env.Masked()
		for _, name := range names {
			fmt.Fprintf(app.Stdout, "    %s\n", VerboseStyle.Render(name+"="+masked[name]))
		}
	}
	for _, w := range report.DestructiveWarnings {
		fmt.Fprintf(app.Stdout, "  %s %s\n", ErrorStyle.Render("DANGER"), w)
	}
}

// warnOverrides surfaces shadowed saved variables before execution output.
func warnOverrides(app *App, report *appexec.RunReport) {
	for _, ov := range report.Overrides {
		fmt.Fprintln(app.Stderr, WarningStyle.Render("Warning: ")+
			fmt.Sprintf("saved %s overridden by live session value", ov.Name))
	}
}
