// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"strings"

	"termroute/internal/classify"
	"termroute/internal/environment"
)

// linuxNames are name fragments that identify the Linux subsystem.
var linuxNames = []string{"wsl", "ubuntu", "debian", "kali", "linux", "fedora", "opensuse", "alpine"}

// CategoryForName maps a free-text environment name, as written in an override
// rule, to a category. Matching is by case-insensitive substring, checked in
// order powershell, cmd, gitbash, wsl. Anything else is custom.
func CategoryForName(name string) environment.Category {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "":
		return environment.CategoryCustom
	case strings.Contains(n, "powershell"), strings.Contains(n, "pwsh"):
		return environment.CategoryPowerShell
	case strings.Contains(n, "cmd"), strings.Contains(n, "command"):
		return environment.CategoryCmd
	case strings.Contains(n, "bash"), strings.Contains(n, "git"):
		return environment.CategoryGitBash
	}
	for _, fragment := range linuxNames {
		if strings.Contains(n, fragment) {
			return environment.CategoryWSL
		}
	}
	return environment.CategoryCustom
}

// defaultCategory is the policy for classes absent from the rule table: path-like
// tokens with forward slashes go to the POSIX shell, backslashes to the native
// prompt, everything else (including the unknown class) to PowerShell.
func defaultCategory(class classify.CommandClass) environment.Category {
	switch {
	case strings.Contains(string(class), "/"):
		return environment.CategoryGitBash
	case strings.Contains(string(class), `\`):
		return environment.CategoryCmd
	default:
		return environment.CategoryPowerShell
	}
}
