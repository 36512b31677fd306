// SPDX-License-Identifier: MPL-2.0

// Package stats keeps anonymized usage statistics of launched commands.
//
// Only the command class is stored, never the arguments. Data is persisted
// as TOML next to the configuration file.
package stats
