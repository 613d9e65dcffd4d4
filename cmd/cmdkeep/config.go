// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdkeep/cmdkeep/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the config file path in effect",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	content, err := config.GenerateTOML(app.Config)
	if err != nil {
		return err
	}
	if app.ConfigPath != "" {
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("# loaded from "+app.ConfigPath))
	} else {
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("# built-in defaults (no config file found)"))
	}
	fmt.Fprint(app.Stdout, content)
	return nil
}

func runConfigInit(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	path, err := config.CreateDefaultConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s %s\n", SuccessStyle.Render("Config at"), path)
	return nil
}

func runConfigPath(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if app.ConfigPath != "" {
		fmt.Fprintln(app.Stdout, app.ConfigPath)
		return nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(app.Stdout, dir+"/"+config.ConfigFileName+"."+config.ConfigFileExt)
	return nil
}
