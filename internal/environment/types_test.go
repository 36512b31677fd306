// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"errors"
	"testing"
)

func TestCategory_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		if valid, errs := c.IsValid(); !valid {
			t.Errorf("%s.IsValid() = false, %v", c, errs)
		}
	}

	valid, errs := Category("fish").IsValid()
	if valid {
		t.Fatal("fish should not be a valid category")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidCategory) {
		t.Errorf("errors = %v, want ErrInvalidCategory", errs)
	}
}

func TestEnvironment_IsValid(t *testing.T) {
	t.Parallel()

	good := Environment{Identity: "Bash", Handle: "/bin/bash", Category: CategoryGitBash}
	if valid, errs := good.IsValid(); !valid {
		t.Errorf("valid environment rejected: %v", errs)
	}

	bad := Environment{Identity: " ", Handle: "", Category: "nope"}
	valid, errs := bad.IsValid()
	if valid {
		t.Fatal("invalid environment accepted")
	}
	var envErr *InvalidEnvironmentError
	if !errors.As(errs[0], &envErr) {
		t.Fatalf("want *InvalidEnvironmentError, got %T", errs[0])
	}
	if len(envErr.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %d, want 3", len(envErr.FieldErrors))
	}
	if !errors.Is(errs[0], ErrInvalidEnvironment) {
		t.Error("should wrap ErrInvalidEnvironment")
	}
}

func TestFinders(t *testing.T) {
	t.Parallel()

	envs := []Environment{
		{Identity: "Bash", Category: CategoryGitBash},
		{Identity: "Zsh", Category: CategoryGitBash},
		{Identity: "WSL", Category: CategoryWSL},
	}

	if env, ok := FindByCategory(envs, CategoryGitBash); !ok || env.Identity != "Bash" {
		t.Errorf("FindByCategory(gitbash) = %v, %v", env, ok)
	}
	if _, ok := FindByCategory(envs, CategoryCmd); ok {
		t.Error("FindByCategory(cmd) should miss")
	}
	if env, ok := FindByIdentity(envs, "Zsh"); !ok || env.Identity != "Zsh" {
		t.Errorf("FindByIdentity(Zsh) = %v, %v", env, ok)
	}
	if _, ok := FindByIdentity(envs, "zsh"); ok {
		t.Error("FindByIdentity is exact")
	}
	if env, ok := FindByName(envs, "  wsl "); !ok || env.Identity != "WSL" {
		t.Errorf("FindByName(wsl) = %v, %v", env, ok)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	win := DefaultCatalog("windows")
	if len(win) != 6 || win[5].Identity != "WSL" || win[5].Probe != ProbePath {
		t.Errorf("unexpected windows catalog: %+v", win)
	}
	for _, entry := range DefaultCatalog("linux") {
		if valid, errs := entry.environment(false).IsValid(); !valid {
			t.Errorf("catalog entry %s invalid: %v", entry.Identity, errs)
		}
	}

	win[0].Identity = "changed"
	if DefaultCatalog("windows")[0].Identity != "PowerShell" {
		t.Error("DefaultCatalog must return a copy")
	}

	custom := CustomEntry("", `D:\tools\nu.exe`, []string{"-l"})
	if custom.Identity != "nu" || custom.Category != CategoryCustom || custom.Probe != ProbeFile {
		t.Errorf("CustomEntry() = %+v", custom)
	}
	extended := DefaultCatalog("linux").With(custom)
	if extended[len(extended)-1].Identity != "nu" {
		t.Error("With() did not append")
	}
}
