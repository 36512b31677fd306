// SPDX-License-Identifier: MPL-2.0

// Package environment holds the catalog of shell environments termroute can
// target, probes which of them are usable on the current host, and removes
// duplicates and ranks the usable ones.
//
// Discovery never fails: every probe error (missing file, PATH miss, spawn
// failure, permission problem, timeout) is absorbed and reported as
// Usable=false. Dedupe and Recommend are pure functions over their input.
package environment
