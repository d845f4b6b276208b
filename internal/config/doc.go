// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/gpihelp/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/gpihelp/config.cue on macOS, %APPDATA%\gpihelp\config.cue
// on Windows). It selects the pager, the inline value limits and titles of documentation
// pages, the index layout, and UI options.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
