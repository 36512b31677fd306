// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for termroute.
//
// This package implements the Cobra command hierarchy: environment detection,
// command resolution and explanation, launching, configuration management
// and usage statistics. App is the composition root every handler receives.
package cmd
