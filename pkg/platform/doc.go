// SPDX-License-Identifier: MPL-2.0

// Package platform provides host-platform helpers used when probing for shells.
//
// It centralizes GOOS names, executable suffix handling, the PATH lookup command
// (where on Windows, which elsewhere), and detection of application sandboxes
// (Flatpak, Snap) whose probes must be forwarded to the host.
package platform
