// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"github.com/cmdkeep/cmdkeep/internal/config"
)

// resolveOutputFormat picks the rendering format: an explicit --output
// flag wins over the configured default.
func resolveOutputFormat(app *App, flagValue string) (config.OutputFormat, error) {
	if flagValue != "" {
		return config.ParseOutputFormat(flagValue)
	}
	return app.Config.UI.Output, nil
}

// renderStructured writes v as JSON or YAML; table rendering is done by
// the caller since every command has its own columns.
func renderStructured(w io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("renderStructured: unsupported format %q", format)
	}
}

// newTable returns a tabwriter configured the same way for every
// tabular command.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
