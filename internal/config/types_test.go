// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"

	"termroute/internal/environment"
)

func TestProbeTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   ProbeTimeout
		want    time.Duration
		wantErr bool
	}{
		{"", environment.DefaultProbeTimeout, false},
		{"2s", 2 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"250ms", 250 * time.Millisecond, false},
		{"0s", 0, true},
		{"-1s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := tt.value.Duration()
		if (err != nil) != tt.wantErr {
			t.Errorf("Duration(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidProbeTimeout) {
				t.Errorf("Duration(%q) error should wrap ErrInvalidProbeTimeout", tt.value)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("Duration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, _ := cs.IsValid(); !valid {
			t.Errorf("%q should be valid", cs)
		}
	}
	valid, errs := ColorScheme("neon").IsValid()
	if valid || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("neon: valid=%v errs=%v", valid, errs)
	}
}

func TestConfig_IsValid_CollectsErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Rules[""] = "PowerShell"
	cfg.CustomEnvironments = []CustomEnvironment{{Name: "blank"}, {Path: "/bin/nu", Args: []string{""}}}
	cfg.Probe.Timeout = "never"
	cfg.UI.ColorScheme = "neon"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("config should be invalid")
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("want *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 5 {
		t.Errorf("FieldErrors = %v, want 5 entries", cfgErr.FieldErrors)
	}
	if !errors.Is(cfgErr.FieldErrors[0], ErrInvalidRule) {
		t.Errorf("first error should be the rule error, got %v", cfgErr.FieldErrors[0])
	}
	if !errors.Is(cfgErr.FieldErrors[1], ErrInvalidCustomEnvironment) {
		t.Errorf("second error should be a custom environment error, got %v", cfgErr.FieldErrors[1])
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CustomEnvironments = []CustomEnvironment{{Name: "Nu", Path: "nu", Args: []string{"-l"}}}

	clone := cfg.Clone()
	clone.Rules["git"] = "WSL"
	clone.CustomEnvironments[0].Args[0] = "--changed"

	if cfg.Rules["git"] != "Git Bash" || cfg.CustomEnvironments[0].Args[0] != "-l" {
		t.Error("Clone() must deep copy rules and args")
	}
}

func TestConfig_CatalogEntries(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CustomEnvironments = []CustomEnvironment{
		{Name: "Nu", Path: "/usr/bin/nu", Args: []string{"-l"}},
		{Path: `D:\tools\elvish.exe`},
	}

	entries := cfg.CatalogEntries()
	if len(entries) != 2 {
		t.Fatalf("CatalogEntries() = %v", entries)
	}
	if entries[0].Identity != "Nu" || entries[0].Category != environment.CategoryCustom || entries[0].Args[0] != "-l" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Identity != "elvish" || entries[1].Probe != environment.ProbeFile {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}
