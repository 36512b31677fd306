// SPDX-License-Identifier: MPL-2.0

// Package launcher starts commands inside a resolved execution environment.
//
// A non-interactive run passes the command to the environment's shell as a
// single argument. An interactive run starts the shell on a pseudo-terminal
// (pipes on Windows), types each command followed by a newline and closes the
// session with "exit".
package launcher
