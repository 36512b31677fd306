// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"slices"
	"testing"
)

func sampleEnvs() []Environment {
	return []Environment{
		{Identity: "PowerShell", Handle: "ps.exe", Category: CategoryPowerShell, Usable: true},
		{Identity: "Windows PowerShell", Handle: "ps.exe", Category: CategoryPowerShell, Usable: true},
		{Identity: "Command Prompt", Handle: "cmd.exe", Category: CategoryCmd, Usable: true},
		{Identity: "Git Bash", Handle: "bash.exe", Category: CategoryGitBash, Usable: true},
		{Identity: "Git Bash (x86)", Handle: "bash86.exe", Category: CategoryGitBash, Usable: true},
		{Identity: "Nu", Handle: "nu.exe", Category: CategoryCustom, Usable: true},
		{Identity: "WSL", Handle: "wsl.exe", Category: CategoryWSL, Usable: false},
		{Identity: "Fake PS", Handle: "ps.exe", Category: CategoryCustom, Usable: true},
	}
}

func identities(envs []Environment) []Identity {
	out := make([]Identity, len(envs))
	for i, env := range envs {
		out[i] = env.Identity
	}
	return out
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	got := identities(Dedupe(sampleEnvs()))
	want := []Identity{"PowerShell", "Command Prompt", "Git Bash", "Git Bash (x86)", "Nu", "WSL", "Fake PS"}
	if !slices.Equal(got, want) {
		t.Errorf("Dedupe() = %v, want %v", got, want)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	t.Parallel()

	once := Dedupe(sampleEnvs())
	twice := Dedupe(once)
	if !slices.Equal(identities(once), identities(twice)) {
		t.Errorf("Dedupe(Dedupe(L)) = %v, want %v", identities(twice), identities(once))
	}
}

func TestDedupe_Empty(t *testing.T) {
	t.Parallel()

	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Dedupe(nil) = %v", got)
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	got := Recommend(sampleEnvs())
	want := []Identity{"PowerShell", "Git Bash", "Command Prompt"}
	if !slices.Equal(identities(got), want) {
		t.Errorf("Recommend() = %v, want %v", identities(got), want)
	}

	seen := map[Category]bool{}
	input := sampleEnvs()
	for _, env := range got {
		if seen[env.Category] {
			t.Errorf("category %s recommended twice", env.Category)
		}
		seen[env.Category] = true
		if env.Category == CategoryCustom {
			t.Errorf("custom environment %s recommended", env.Identity)
		}
		if !slices.ContainsFunc(input, func(e Environment) bool { return e.Identity == env.Identity }) {
			t.Errorf("%s not in input", env.Identity)
		}
	}
}

func TestRecommend_PriorityIndependentOfInputOrder(t *testing.T) {
	t.Parallel()

	envs := sampleEnvs()
	slices.Reverse(envs)
	got := Recommend(envs)
	want := []Category{CategoryPowerShell, CategoryGitBash, CategoryCmd}
	for i, env := range got {
		if env.Category != want[i] {
			t.Errorf("Recommend()[%d] = %s, want %s", i, env.Category, want[i])
		}
	}
	if got[1].Identity != "Git Bash (x86)" {
		t.Errorf("first gitbash in reversed input should win, got %s", got[1].Identity)
	}
}
