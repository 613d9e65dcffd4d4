// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/alias"
)

var (
	linkCmd = &cobra.Command{
		Use:   "link <short> <name>",
		Short: "Create a short alias for a saved command",
		Long: `Create a short alias so <short> can be used wherever <name> can.

The target must already exist. Linking an existing short alias silently
re-points it. Command verbs (save, run, list, ...) cannot be used as
short aliases.`,
		Example: `  cmdkeep link b build
  cmdkeep run b`,
		Args: cobra.ExactArgs(2),
		RunE: runLink,
	}

	unlinkCmd = &cobra.Command{
		Use:   "unlink <short>",
		Short: "Remove a short alias",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnlink,
	}
)

func runLink(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	short, target := alias.Name(args[0]), alias.Name(args[1])
	if err := app.Shortcuts.Create(short, target, app.Registry); err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s %s %s %s\n",
		SuccessStyle.Render("Linked"),
		CmdStyle.Render(string(short)),
		SubtitleStyle.Render("→"),
		CmdStyle.Render(string(target)))
	return nil
}

func runUnlink(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	short := alias.Name(args[0])
	if err := app.Shortcuts.Remove(short); err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s %s\n", SuccessStyle.Render("Unlinked"), CmdStyle.Render(string(short)))
	return nil
}
