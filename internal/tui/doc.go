// SPDX-License-Identifier: MPL-2.0

// Package tui holds the interactive prompts of the CLI. Prompts render with
// bubbletea when their input is a terminal and fall back to a line-based
// accessible mode for pipes, scripts and screen readers.
package tui
