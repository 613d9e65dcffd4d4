// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/config"
	"github.com/cmdkeep/cmdkeep/internal/issue"
)

var (
	exportOutput string

	exportCmd = &cobra.Command{
		Use:   "export [file]",
		Short: "Export the whole alias table",
		Long: `Export every saved command as JSON (or YAML) to stdout or a file,
suitable for 'cmdkeep import' on another machine.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	importMerge bool

	importCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Import an alias table",
		Long: `Import saved commands from a file produced by 'cmdkeep export'.

By default the imported table replaces the current one. With --merge,
imported entries are added to the existing table, overwriting entries
with the same name. Every incoming record is validated before anything
is written.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output format: json or yaml (default json)")
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "merge into the existing table instead of replacing it")
}

func runExport(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	table, err := app.Registry.Export()
	if err != nil {
		return err
	}

	format := config.OutputJSON
	if exportOutput != "" {
		if format, err = config.ParseOutputFormat(exportOutput); err != nil {
			return err
		}
		if format == config.OutputTable {
			return fmt.Errorf("export format %q: %w: use json or yaml", exportOutput, issue.ErrInvalidInput)
		}
	}

	if len(args) == 0 {
		return renderStructured(app.Stdout, format, table)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export file %s: %w", args[0], err)
	}
	defer f.Close()
	if err := renderStructured(f, format, table); err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s %d command(s) to %s\n", SuccessStyle.Render("Exported"), len(table), args[0])
	return nil
}

func runImport(cobraCmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file %s: %w", args[0], err)
	}

	var incoming alias.Table
	// YAML is a superset of JSON here, so one decode path covers both
	// export formats.
	if err := yaml.Unmarshal(data, &incoming); err != nil {
		// Retry as plain JSON for a clearer error on JSON input.
		if jsonErr := json.Unmarshal(data, &incoming); jsonErr != nil {
			return issue.NewErrorContext().
				WithOperation("import alias table").
				WithResource(args[0]).
				WithSuggestion("Check the file was produced by 'cmdkeep export'").
				Wrap(fmt.Errorf("%w: %w", issue.ErrInvalidInput, err)).
				BuildError()
		}
	}

	if err := app.Registry.Import(incoming, importMerge); err != nil {
		return err
	}

	mode := "replacing the existing table"
	if importMerge {
		mode = "merged into the existing table"
	}
	fmt.Fprintf(app.Stdout, "%s %d command(s) (%s)\n", SuccessStyle.Render("Imported"), len(incoming), mode)
	return nil
}
