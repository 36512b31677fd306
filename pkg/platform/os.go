// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// executableSuffixes are the launcher suffixes stripped from a command's first token.
var executableSuffixes = []string{".exe", ".bat", ".cmd", ".sh", ".ps1"}

// ExecutableSuffixes returns the recognized platform executable suffixes.
func ExecutableSuffixes() []string {
	out := make([]string, len(executableSuffixes))
	copy(out, executableSuffixes)
	return out
}

// TrimExecutableSuffix removes one trailing executable suffix from name.
// Matching is case-sensitive; callers lowercase first.
func TrimExecutableSuffix(name string) string {
	for _, suffix := range executableSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			return trimmed
		}
	}
	return name
}

// LookupCommand returns the host command that locates an executable on PATH.
func LookupCommand(goos string) string {
	if goos == Windows {
		return "where"
	}
	return "which"
}

// BaseName returns the last element of a launch handle, accepting both
// forward and backward slashes so Windows paths resolve on any host.
func BaseName(handle string) string {
	if i := strings.LastIndexAny(handle, `\/`); i >= 0 {
		return handle[i+1:]
	}
	return filepath.Base(handle)
}

// DisplayName returns the base name of handle without its extension.
func DisplayName(handle string) string {
	base := BaseName(handle)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}
