// SPDX-License-Identifier: MPL-2.0

package config

import (
	"strings"
	"testing"
)

func TestExportImport_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Rules = map[string]string{"git": "Git Bash", "./run": "bash"}
	cfg.CustomEnvironments = []CustomEnvironment{{Name: "Nu", Path: "/bin/nu", Args: []string{"-l"}}}
	cfg.EnableStatistics = true
	cfg.Probe.Timeout = "5s"

	data, err := Export(cfg)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(string(data), "default_environment = 'PowerShell'") &&
		!strings.Contains(string(data), `default_environment = "PowerShell"`) {
		t.Errorf("export should contain default_environment:\n%s", data)
	}

	imported, err := Import(data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(imported.Rules) != 2 || imported.Rules["./run"] != "bash" {
		t.Errorf("Rules = %v", imported.Rules)
	}
	if len(imported.CustomEnvironments) != 1 || imported.CustomEnvironments[0].Args[0] != "-l" {
		t.Errorf("CustomEnvironments = %+v", imported.CustomEnvironments)
	}
	if !imported.EnableStatistics || imported.Probe.Timeout != "5s" {
		t.Errorf("settings lost: %+v", imported)
	}
}

func TestImport_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Import([]byte("enable_statistics = true\n"))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !cfg.EnableStatistics || cfg.DefaultEnvironment != "PowerShell" || cfg.Rules["git"] != "Git Bash" {
		t.Errorf("partial import should keep defaults: %+v", cfg)
	}
}

func TestImport_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown field":  "container_engine = 'docker'\n",
		"invalid scheme": "[ui]\ncolor_scheme = 'neon'\n",
		"bad toml":       "rules = {\n",
	}
	for name, data := range tests {
		if _, err := Import([]byte(data)); err == nil {
			t.Errorf("%s: Import() should fail", name)
		}
	}
}
