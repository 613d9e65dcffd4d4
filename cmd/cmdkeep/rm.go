// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/alias"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved command",
	Long: `Delete a saved command by its primary name.

Short aliases pointing at the deleted command are left in place and
surfaced as warnings; remove them with 'cmdkeep unlink'.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func runRm(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	name := alias.Name(args[0])
	if err := app.Registry.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s %s\n", SuccessStyle.Render("Deleted"), CmdStyle.Render(string(name)))
	warnDanglingShorts(app)
	return nil
}
