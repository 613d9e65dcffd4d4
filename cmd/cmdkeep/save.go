// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/issue"
)

var (
	saveDir        string
	savePathMode   string
	saveEnvPairs   []string
	saveCaptureEnv []string
	saveLast       bool

	saveCmd = &cobra.Command{
		Use:   "save <name> [command...]",
		Short: "Save a command under a name",
		Long: `Save a shell command together with a working directory under a name.

The command text is everything after the name; quote it if it contains
flags of its own. With --last the newest entry of your shell history is
saved instead. The working directory defaults to the current directory.`,
		Example: `  cmdkeep save build "npm run build"
  cmdkeep save deploy ./deploy.sh --dir ~/proj --env REGION=eu-west-1
  cmdkeep save retry --last`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSave,
	}
)

func init() {
	saveCmd.Flags().StringVarP(&saveDir, "dir", "d", "", "working directory to save (default: current directory)")
	saveCmd.Flags().StringVar(&savePathMode, "path-mode", "", "where the command runs later: saved or current (default: saved)")
	saveCmd.Flags().StringArrayVarP(&saveEnvPairs, "env", "e", nil, "environment variable to snapshot, as KEY=VALUE (repeatable)")
	saveCmd.Flags().StringArrayVar(&saveCaptureEnv, "capture-env", nil, "environment variable to snapshot from the current session (repeatable)")
	saveCmd.Flags().BoolVar(&saveLast, "last", false, "save the previous command from shell history")
}

func runSave(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	name := alias.Name(args[0])

	command, err := saveCommandText(app, args[1:])
	if err != nil {
		return err
	}

	dir := saveDir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("determine current directory: %w", err)
		}
	}

	mode, err := alias.ParsePathMode(savePathMode)
	if err != nil {
		return err
	}

	env, err := saveEnvSnapshot(app)
	if err != nil {
		return err
	}

	existed, err := app.Registry.Exists(name)
	if err != nil {
		return err
	}
	if err := app.Registry.Set(name, command, dir, mode, env); err != nil {
		return err
	}

	verb := "Saved"
	if existed {
		verb = "Updated"
	}
	fmt.Fprintf(app.Stdout, "%s %s %s %s\n",
		SuccessStyle.Render(verb),
		CmdStyle.Render(string(name)),
		SubtitleStyle.Render("→"),
		command)
	if verbose {
		fmt.Fprintf(app.Stdout, "%s\n", VerboseStyle.Render("  dir: "+dir+"  mode: "+string(mode.Effective())))
	}
	return nil
}

// saveCommandText picks the command text from the arguments or, with
// --last, from the shell history file.
func saveCommandText(app *App, rest []string) (string, error) {
	if saveLast {
		if len(rest) > 0 {
			return "", fmt.Errorf("save: %w: --last cannot be combined with command text", issue.ErrInvalidInput)
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		path := app.History.DefaultPath(app.LiveEnv["HISTFILE"], home)
		return app.History.LastCommand(path)
	}
	if len(rest) == 0 {
		return "", fmt.Errorf("save: %w: no command text given (or use --last)", issue.ErrInvalidInput)
	}
	return strings.Join(rest, " "), nil
}

// saveEnvSnapshot builds the env snapshot from --env pairs and
// --capture-env names.
func saveEnvSnapshot(app *App) (map[string]string, error) {
	if len(saveEnvPairs) == 0 && len(saveCaptureEnv) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(saveEnvPairs)+len(saveCaptureEnv))
	for _, pair := range saveEnvPairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("env pair %q: %w: expected KEY=VALUE", pair, issue.ErrInvalidInput)
		}
		env[k] = v
	}
	for _, k := range saveCaptureEnv {
		v, ok := app.LiveEnv[k]
		if !ok {
			return nil, fmt.Errorf("capture env %q: %w: not set in the current session", k, issue.ErrNotFound)
		}
		env[k] = v
	}
	return env, nil
}
