// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/termroute/config.cue (or $XDG_CONFIG_HOME/termroute
// on Linux, ~/Library/Application Support/termroute/config.cue on macOS,
// %APPDATA%\termroute\config.cue on Windows). It holds the default environment, per-class
// override rules, custom environments, discovery and UI settings.
//
// Files are validated against an embedded CUE schema (config_schema.cue) before being
// merged over the defaults. Store adapts a Provider to the resolver's preference
// interface and re-reads the file on every lookup.
package config
