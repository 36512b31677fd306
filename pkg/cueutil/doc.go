// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user files against an embedded CUE schema and
// decodes them into Go values.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and a JSON-style path to the offending field,
// for example "config.cue: probe.timeout: invalid value".
package cueutil
