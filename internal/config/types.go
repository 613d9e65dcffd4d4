// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cmdkeep/cmdkeep/internal/recent"
)

const (
	// OutputTable renders human-readable aligned tables.
	OutputTable OutputFormat = "table"
	// OutputJSON renders machine-readable JSON.
	OutputJSON OutputFormat = "json"
	// OutputYAML renders machine-readable YAML.
	OutputYAML OutputFormat = "yaml"
)

var (
	// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat specifies how list-style command output is rendered.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// UIConfig groups presentation settings.
	UIConfig struct {
		// Verbose enables diagnostic output on every command.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
		// Output selects the default rendering for list-style commands.
		Output OutputFormat `mapstructure:"output" toml:"output" validate:"oneof=table json yaml"`
	}

	// Config is the application configuration.
	Config struct {
		// StoreDir overrides where the alias and metadata tables live.
		// Empty means the platform config directory.
		StoreDir string `mapstructure:"store_dir" toml:"store_dir"`
		// RecentMaxSize caps the raw execution log.
		RecentMaxSize int `mapstructure:"recent_max_size" toml:"recent_max_size" validate:"min=1,max=1000"`
		// UI groups presentation settings.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}

	// InvalidConfigError is returned when a loaded Config fails validation.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		RecentMaxSize: recent.DefaultMaxSize,
		UI: UIConfig{
			Verbose: false,
			Output:  OutputTable,
		},
	}
}

// IsValid returns whether the OutputFormat is a recognized value,
// and a list of validation errors if it is not.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputTable, OutputJSON, OutputYAML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// ParseOutputFormat validates a raw string and returns it as an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if ok, errs := f.IsValid(); !ok {
		return "", errs[0]
	}
	return f, nil
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (must be one of: table, json, yaml)", string(e.Value))
}

// Unwrap returns ErrInvalidOutputFormat so callers can use errors.Is for programmatic detection.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the configuration against its struct validation tags.
func (c *Config) Validate() error {
	var fieldErrs []error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs = append(fieldErrs, fmt.Errorf("field %s: failed %q constraint (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			fieldErrs = append(fieldErrs, err)
		}
	}

	if len(fieldErrs) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrs}
	}
	return nil
}
