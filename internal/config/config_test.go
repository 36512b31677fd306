// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"termroute/internal/issue"
	"termroute/internal/testutil"
)

func loadFromDir(t *testing.T, dir string) (*Config, error) {
	t.Helper()
	return NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), content)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.DefaultEnvironment != "PowerShell" {
		t.Errorf("DefaultEnvironment = %q, want PowerShell", cfg.DefaultEnvironment)
	}
	if cfg.Rules["git"] != "Git Bash" || cfg.Rules["python"] != "CMD" || cfg.Rules["linux"] != "WSL" {
		t.Errorf("unexpected default rules: %v", cfg.Rules)
	}
	if !cfg.AutoDetectOnStartup || cfg.EnableStatistics || !cfg.ShowRecommendations || !cfg.AutoRunConfirmation {
		t.Errorf("unexpected default flags: %+v", cfg)
	}
	if cfg.Probe.Timeout != "2s" || cfg.Probe.SpawnLookup {
		t.Errorf("unexpected probe defaults: %+v", cfg.Probe)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config invalid: %v", errs)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromDir(t, t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.DefaultEnvironment != defaults.DefaultEnvironment {
		t.Errorf("DefaultEnvironment = %q", cfg.DefaultEnvironment)
	}
	if len(cfg.Rules) != len(defaults.Rules) {
		t.Errorf("Rules = %v, want defaults", cfg.Rules)
	}
	if len(cfg.CustomEnvironments) != 0 {
		t.Errorf("CustomEnvironments = %v, want none", cfg.CustomEnvironments)
	}
	if cfg.Probe.Timeout != "2s" || !cfg.AutoRunConfirmation {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
default_environment: "Git Bash"
rules: {
	"NPM":         "WSL"
	"./configure": "bash"
}
custom_environments: [
	{name: "Nu", path: "/usr/local/bin/nu", args: ["--login"]},
	{path: "/opt/elvish/elvish.exe"},
]
enable_statistics: true
auto_run_confirmation: false
exact_overrides: true
probe: spawn_lookup: true
ui: {
	color_scheme: "dark"
	verbose: true
}
`)

	cfg, err := loadFromDir(t, dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DefaultEnvironment != "Git Bash" {
		t.Errorf("DefaultEnvironment = %q", cfg.DefaultEnvironment)
	}
	if len(cfg.Rules) != 2 || cfg.Rules["npm"] != "WSL" || cfg.Rules["./configure"] != "bash" {
		t.Errorf("Rules = %v; file rules must replace defaults and keep dotted keys", cfg.Rules)
	}
	if len(cfg.CustomEnvironments) != 2 {
		t.Fatalf("CustomEnvironments = %v", cfg.CustomEnvironments)
	}
	nu := cfg.CustomEnvironments[0]
	if nu.Name != "Nu" || nu.Path != "/usr/local/bin/nu" || len(nu.Args) != 1 || nu.Args[0] != "--login" {
		t.Errorf("custom[0] = %+v", nu)
	}
	if got := cfg.CustomEnvironments[1].Identity(); got != "elvish" {
		t.Errorf("unnamed custom identity = %q, want elvish", got)
	}
	if !cfg.EnableStatistics || cfg.AutoRunConfirmation || !cfg.ExactOverrides {
		t.Errorf("flags not loaded: %+v", cfg)
	}
	if !cfg.AutoDetectOnStartup || !cfg.ShowRecommendations {
		t.Error("unset flags should keep their defaults")
	}
	if !cfg.Probe.SpawnLookup || cfg.Probe.Timeout != "2s" {
		t.Errorf("Probe = %+v; partial section should merge with defaults", cfg.Probe)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark || !cfg.UI.Verbose {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoad_EmptyRulesDisablesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromDir(t, writeConfig(t, "rules: {}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Rules == nil || len(cfg.Rules) != 0 {
		t.Errorf("Rules = %v, want empty non-nil map", cfg.Rules)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax error", "default_environment: \"PowerShell\n", "load configuration"},
		{"unknown field", "container_engine: \"docker\"\n", "container_engine"},
		{"bad color scheme", "ui: color_scheme: \"neon\"\n", "color_scheme"},
		{"bad timeout format", "probe: timeout: \"soon\"\n", "timeout"},
		{"zero timeout", "probe: timeout: \"0s\"\n", "probe timeout"},
		{"custom without path", "custom_environments: [{name: \"x\"}]\n", "path"},
		{"empty rule target", "rules: git: \"\"\n", "git"},
		{"duplicate custom names", `custom_environments: [{name: "Nu", path: "/a/nu"}, {name: "nu", path: "/b/nu"}]` + "\n", "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadFromDir(t, writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be *issue.ActionableError, got %T", err)
			}
			if len(ae.Suggestions) == 0 {
				t.Error("actionable error should carry suggestions")
			}
		})
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "elsewhere.cue")
	testutil.MustWriteFile(t, path, "default_environment: \"WSL\"\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultEnvironment != "WSL" {
		t.Errorf("DefaultEnvironment = %q, want WSL", cfg.DefaultEnvironment)
	}

	_, err = NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path + ".missing"})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("missing explicit file should fail, got %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DefaultEnvironment = "Zsh"
	cfg.Rules = map[string]string{"git": "Git Bash", "cargo": "pwsh", "./run": "bash"}
	cfg.CustomEnvironments = []CustomEnvironment{
		{Name: "Nu", Path: `C:\Program Files\nu\nu.exe`, Args: []string{"-l", `--config "x"`}},
		{Path: "/bin/fish"},
	}
	cfg.EnableStatistics = true
	cfg.Probe.Timeout = "750ms"
	cfg.UI.ColorScheme = ColorSchemeLight

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := loadFromDir(t, dir)
	if err != nil {
		t.Fatalf("Load() after SaveTo error = %v\n%s", err, testutil.MustReadFile(t, path))
	}
	if loaded.DefaultEnvironment != "Zsh" || len(loaded.Rules) != 3 || loaded.Rules["./run"] != "bash" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
	if len(loaded.CustomEnvironments) != 2 || loaded.CustomEnvironments[0].Args[1] != `--config "x"` {
		t.Errorf("custom environments = %+v", loaded.CustomEnvironments)
	}
	if loaded.CustomEnvironments[0].Path != `C:\Program Files\nu\nu.exe` {
		t.Errorf("windows path mangled: %q", loaded.CustomEnvironments[0].Path)
	}
	if !loaded.EnableStatistics || loaded.Probe.Timeout != "750ms" || loaded.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("settings lost: %+v", loaded)
	}
}

func TestSaveTo_RejectsInvalid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.ColorScheme = "neon"
	err := SaveTo(filepath.Join(t.TempDir(), "config.cue"), cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SaveTo() error = %v, want ErrInvalidConfig", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.cue")

	created, err := CreateDefaultConfig(path)
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %v, %v; want true, nil", created, err)
	}
	content := testutil.MustReadFile(t, path)
	if !strings.Contains(content, `default_environment: "PowerShell"`) || !strings.Contains(content, `"git": "Git Bash"`) {
		t.Errorf("unexpected generated file:\n%s", content)
	}

	testutil.MustWriteFile(t, path, "// mine\n")
	created, err = CreateDefaultConfig(path)
	if err != nil || created {
		t.Errorf("existing file must be kept, got %v, %v", created, err)
	}
	if testutil.MustReadFile(t, path) != "// mine\n" {
		t.Error("existing file was overwritten")
	}
}

func TestConfigDir(t *testing.T) {
	t.Cleanup(Reset)

	SetConfigDirOverride("/custom/dir")
	dir, err := ConfigDir()
	if err != nil || dir != "/custom/dir" {
		t.Errorf("ConfigDir() = %q, %v; want override", dir, err)
	}

	Reset()
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want it to end in %s", dir, AppName)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	got, err := FilePath(LoadOptions{ConfigFilePath: "/x/y.cue", ConfigDirPath: "/ignored"})
	if err != nil || got != "/x/y.cue" {
		t.Errorf("FilePath(file) = %q, %v", got, err)
	}
	got, err = FilePath(LoadOptions{ConfigDirPath: "/etc/termroute"})
	if err != nil || got != filepath.Join("/etc/termroute", "config.cue") {
		t.Errorf("FilePath(dir) = %q, %v", got, err)
	}
}
