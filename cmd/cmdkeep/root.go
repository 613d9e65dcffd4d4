// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cmdkeep.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/runtime"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "cmdkeep",
		Short: "Keep shell commands and re-run them from anywhere",
		Long: TitleStyle.Render("cmdkeep") + SubtitleStyle.Render(" - Keep shell commands and re-run them from anywhere") + `

cmdkeep saves a shell command together with the directory it should run
in, under a short name. Saved commands can be re-invoked from any
directory by name, by a short alias, or by @N recent reference, with the
saved environment snapshot merged under your live session environment.

` + SubtitleStyle.Render("Quick Start:") + `
  1. cmdkeep save build "npm run build"
  2. cd anywhere
  3. cmdkeep run build

` + SubtitleStyle.Render("Examples:") + `
  cmdkeep save deploy ./deploy.sh --env REGION=eu-west-1
  cmdkeep run deploy --dry-run    Preview without executing
  cmdkeep run @0                  Re-run the most recent command
  cmdkeep link d deploy           Make 'd' mean 'deploy'
  cmdkeep recent                  Show recent executions`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cmdkeep/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		// A saved command's own exit code propagates verbatim; everything
		// else maps through the error taxonomy.
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(issue.ExitCodeFor(err))
	}
}

// initRootConfig applies config-driven defaults to flags not set explicitly.
func initRootConfig() {
	app, err := getApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	if !verbose {
		verbose = app.Config.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// childExit wraps a child's non-zero exit code for propagation.
func childExit(code runtime.ExitCode) error {
	if code.IsSuccess() {
		return nil
	}
	return &ExitError{Code: code}
}
