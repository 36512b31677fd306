// SPDX-License-Identifier: MPL-2.0

// Package resolve picks the execution environment for a command line.
//
// A Resolver consults, in order, a per-class override from its PreferenceStore,
// the built-in class rule table, and a default policy based on the shape of the
// command token. When the target category has no usable environment it falls
// back to the store's default environment and finally to the first usable
// environment. Resolution is deterministic and never consults the host.
package resolve
