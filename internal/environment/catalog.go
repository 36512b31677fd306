// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"slices"
	"strings"

	"termroute/pkg/platform"
)

// CatalogEntry describes a known environment before probing.
type CatalogEntry struct {
	Identity Identity
	Handle   Handle
	Category Category
	Probe    ProbeKind
	Args     []string
}

// Catalog is an ordered list of catalog entries. The order is the de facto
// tie-break when the resolver falls back to the first usable environment.
type Catalog []CatalogEntry

var (
	windowsCatalog = Catalog{
		{Identity: "PowerShell", Handle: `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, Category: CategoryPowerShell, Probe: ProbeFile},
		{Identity: "Windows PowerShell", Handle: `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, Category: CategoryPowerShell, Probe: ProbeFile},
		{Identity: "Command Prompt", Handle: `C:\Windows\System32\cmd.exe`, Category: CategoryCmd, Probe: ProbeFile},
		{Identity: "Git Bash", Handle: `C:\Program Files\Git\bin\bash.exe`, Category: CategoryGitBash, Probe: ProbeFile},
		{Identity: "Git Bash (x86)", Handle: `C:\Program Files (x86)\Git\bin\bash.exe`, Category: CategoryGitBash, Probe: ProbeFile},
		{Identity: "WSL", Handle: "wsl.exe", Category: CategoryWSL, Probe: ProbePath},
	}

	posixCatalog = Catalog{
		{Identity: "PowerShell", Handle: "pwsh", Category: CategoryPowerShell, Probe: ProbePath},
		{Identity: "Bash", Handle: "/bin/bash", Category: CategoryGitBash, Probe: ProbeFile},
		{Identity: "Zsh", Handle: "/bin/zsh", Category: CategoryGitBash, Probe: ProbeFile},
		{Identity: "POSIX sh", Handle: "/bin/sh", Category: CategoryGitBash, Probe: ProbeFile},
	}
)

// DefaultCatalog returns the built-in catalog for the given GOOS.
// The returned slice is a copy and may be extended by the caller.
func DefaultCatalog(goos string) Catalog {
	if goos == platform.Windows {
		return windowsCatalog.Clone()
	}
	return posixCatalog.Clone()
}

// CustomEntry builds a catalog entry for a user-defined environment. An empty
// name defaults to the file name of path without its extension.
func CustomEntry(name, path string, args []string) CatalogEntry {
	name = strings.TrimSpace(name)
	if name == "" {
		name = platform.DisplayName(path)
	}
	return CatalogEntry{
		Identity: Identity(name),
		Handle:   Handle(path),
		Category: CategoryCustom,
		Probe:    ProbeFile,
		Args:     slices.Clone(args),
	}
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, entry := range c {
		entry.Args = slices.Clone(entry.Args)
		out[i] = entry
	}
	return out
}

// With returns a copy of the catalog with extra entries appended.
func (c Catalog) With(entries ...CatalogEntry) Catalog {
	out := c.Clone()
	for _, entry := range entries {
		entry.Args = slices.Clone(entry.Args)
		out = append(out, entry)
	}
	return out
}

func (e CatalogEntry) environment(usable bool) Environment {
	return Environment{
		Identity: e.Identity,
		Handle:   e.Handle,
		Category: e.Category,
		Usable:   usable,
		Args:     slices.Clone(e.Args),
	}
}
