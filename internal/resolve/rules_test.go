// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"testing"

	"termroute/internal/classify"
	"termroute/internal/environment"
)

func TestBuiltinRules(t *testing.T) {
	t.Parallel()

	rules := BuiltinRules()
	tests := map[classify.CommandClass]environment.Category{
		"npm":          environment.CategoryPowerShell,
		"bun":          environment.CategoryPowerShell,
		"gh":           environment.CategoryGitBash,
		"conda":        environment.CategoryCmd,
		"helm":         environment.CategoryPowerShell,
		"fish":         environment.CategoryGitBash,
		"pacman":       environment.CategoryWSL,
		"mvn":          environment.CategoryPowerShell,
		"rustup":       environment.CategoryPowerShell,
		"gofmt":        environment.CategoryPowerShell,
		"artisan":      environment.CategoryCmd,
		"rails":        environment.CategoryCmd,
		"msbuild":      environment.CategoryPowerShell,
		"redis-cli":    environment.CategoryCmd,
		"pulumi":       environment.CategoryPowerShell,
		"sdkman":       environment.CategoryGitBash,
		"code":         environment.CategoryPowerShell,
		"taskkill":     environment.CategoryCmd,
		"rsync":        environment.CategoryGitBash,
		"stop-process": environment.CategoryPowerShell,
	}
	for class, want := range tests {
		if got, ok := rules.Lookup(class); !ok || got != want {
			t.Errorf("Lookup(%q) = %q, %v; want %q", class, got, ok, want)
		}
	}

	if _, ok := rules.Lookup("unknown-tool"); ok {
		t.Error("unknown-tool should miss")
	}
}

func TestBuiltinRules_Wellformed(t *testing.T) {
	t.Parallel()

	seen := map[classify.CommandClass]bool{}
	for _, group := range builtinGroups {
		for _, class := range group.classes {
			if seen[class] {
				t.Errorf("class %q listed twice", class)
			}
			seen[class] = true
			if classify.Classify(string(class)) != class {
				t.Errorf("class %q is not in canonical form", class)
			}
		}
		if group.category == environment.CategoryCustom {
			t.Errorf("built-in rules must not target custom")
		}
		if valid, errs := group.category.IsValid(); !valid {
			t.Errorf("invalid category: %v", errs)
		}
	}
	if len(seen) != len(BuiltinRules()) {
		t.Errorf("table has %d entries, groups list %d", len(BuiltinRules()), len(seen))
	}
}

func TestBuiltinRules_ReturnsCopy(t *testing.T) {
	t.Parallel()

	rules := BuiltinRules()
	rules["git"] = environment.CategoryCmd
	delete(rules, "npm")

	fresh := BuiltinRules()
	if fresh["git"] != environment.CategoryGitBash {
		t.Error("mutation leaked into built-in table")
	}
	if _, ok := fresh["npm"]; !ok {
		t.Error("deletion leaked into built-in table")
	}
}

func TestCategoryForName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want environment.Category
	}{
		{"PowerShell", environment.CategoryPowerShell},
		{"Windows PowerShell", environment.CategoryPowerShell},
		{"pwsh", environment.CategoryPowerShell},
		{"cmd", environment.CategoryCmd},
		{"Command Prompt", environment.CategoryCmd},
		{"Git Bash", environment.CategoryGitBash},
		{"bash", environment.CategoryGitBash},
		{"git", environment.CategoryGitBash},
		{"WSL", environment.CategoryWSL},
		{"Ubuntu-22.04", environment.CategoryWSL},
		{"linux", environment.CategoryWSL},
		{"Debian", environment.CategoryWSL},
		{"nushell", environment.CategoryCustom},
		{"", environment.CategoryCustom},
		{"   ", environment.CategoryCustom},
	}
	for _, tt := range tests {
		if got := CategoryForName(tt.name); got != tt.want {
			t.Errorf("CategoryForName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDefaultCategory(t *testing.T) {
	t.Parallel()

	tests := map[classify.CommandClass]environment.Category{
		"./run":          environment.CategoryGitBash,
		`.\run`:          environment.CategoryCmd,
		`a/b\c`:          environment.CategoryGitBash,
		"mytool":         environment.CategoryPowerShell,
		classify.Unknown: environment.CategoryPowerShell,
	}
	for class, want := range tests {
		if got := defaultCategory(class); got != want {
			t.Errorf("defaultCategory(%q) = %q, want %q", class, got, want)
		}
	}
}
