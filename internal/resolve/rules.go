// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"maps"

	"termroute/internal/classify"
	"termroute/internal/environment"
)

// RuleTable maps a command class to the category that should run it.
type RuleTable map[classify.CommandClass]environment.Category

// builtinGroups is the built-in rule table grouped by ecosystem.
var builtinGroups = []struct {
	category environment.Category
	classes  []classify.CommandClass
}{
	// Node.js
	{environment.CategoryPowerShell, []classify.CommandClass{"npm", "npx", "node", "yarn", "pnpm", "bun"}},
	// Git
	{environment.CategoryGitBash, []classify.CommandClass{"git", "gh", "hub"}},
	// Python
	{environment.CategoryCmd, []classify.CommandClass{"python", "python3", "py", "pip", "pip3", "pipenv", "poetry", "conda"}},
	// Containers and Kubernetes
	{environment.CategoryPowerShell, []classify.CommandClass{"docker", "docker-compose", "kubectl", "k9s", "helm", "minikube"}},
	// Shells
	{environment.CategoryGitBash, []classify.CommandClass{"bash", "sh", "zsh", "fish"}},
	// WSL, Linux distributions and their package managers
	{environment.CategoryWSL, []classify.CommandClass{"wsl", "ubuntu", "debian", "kali", "apt", "apt-get", "yum", "dnf", "pacman"}},
	// Build tools
	{environment.CategoryPowerShell, []classify.CommandClass{"make", "cmake", "gradle", "maven", "mvn"}},
	// Rust
	{environment.CategoryPowerShell, []classify.CommandClass{"cargo", "rustc", "rustup"}},
	// Go
	{environment.CategoryPowerShell, []classify.CommandClass{"go", "gofmt"}},
	// PHP
	{environment.CategoryCmd, []classify.CommandClass{"php", "composer", "artisan"}},
	// Ruby
	{environment.CategoryCmd, []classify.CommandClass{"ruby", "gem", "bundle", "rails"}},
	// .NET
	{environment.CategoryPowerShell, []classify.CommandClass{"dotnet", "nuget", "msbuild"}},
	// Databases
	{environment.CategoryCmd, []classify.CommandClass{"mysql", "psql", "mongo", "redis-cli", "sqlite3"}},
	// Cloud CLIs
	{environment.CategoryPowerShell, []classify.CommandClass{"aws", "az", "gcloud", "terraform", "pulumi"}},
	// Version managers
	{environment.CategoryGitBash, []classify.CommandClass{"nvm", "pyenv", "rbenv", "sdkman"}},
	// Editors
	{environment.CategoryPowerShell, []classify.CommandClass{"vim", "nvim", "nano", "emacs", "code"}},
	// Windows-native commands
	{environment.CategoryCmd, []classify.CommandClass{"dir", "copy", "move", "del", "type", "cls", "ipconfig", "netstat", "tasklist", "taskkill"}},
	// Unix utilities
	{environment.CategoryGitBash, []classify.CommandClass{"ls", "cd", "pwd", "cat", "grep", "find", "sed", "awk", "curl", "wget", "ssh", "scp", "rsync"}},
	// PowerShell verbs
	{environment.CategoryPowerShell, []classify.CommandClass{"get-command", "get-help", "get-process", "get-service", "start-process", "stop-process"}},
}

var builtinRules = func() RuleTable {
	table := make(RuleTable)
	for _, group := range builtinGroups {
		for _, class := range group.classes {
			table[class] = group.category
		}
	}
	return table
}()

// BuiltinRules returns a copy of the built-in rule table.
func BuiltinRules() RuleTable {
	return maps.Clone(builtinRules)
}

// Lookup returns the category for class.
func (t RuleTable) Lookup(class classify.CommandClass) (environment.Category, bool) {
	category, ok := t[class]
	return category, ok
}
