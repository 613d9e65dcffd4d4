// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/cmdkeep/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/cmdkeep/config.toml on macOS, %APPDATA%\cmdkeep\config.toml
// on Windows), with CMDKEEP_* environment variables taking precedence over file values.
// Loaded configuration is validated with struct-level validation tags so malformed
// files fail with clear messages instead of surfacing later as odd behavior.
package config
