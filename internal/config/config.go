// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"termroute/internal/issue"
	"termroute/pkg/cueutil"
	"termroute/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "termroute"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// keyDelimiter replaces viper's "." so that rule classes such as
	// "./configure" survive as single map keys.
	keyDelimiter = "::"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the termroute configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading. It returns the
// resolved file path, or "" when no file exists and defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v, DefaultConfig())

	cfgPath, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}

	resolvedPath := ""
	switch {
	case fileExists(cfgPath):
		if err := loadCUEIntoViper(v, cfgPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cfgPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'termroute config dump' to see a valid configuration").
				Wrap(err).
				BuildError()
		}
		resolvedPath = cfgPath
	case opts.ConfigFilePath != "":
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'termroute config init' to create a default configuration").
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	// A file that sets rules replaces the default rule set instead of merging with it.
	if !v.IsSet("rules") {
		cfg.Rules = DefaultRules()
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]string{}
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(cfgPath).
			WithSuggestion("Give each custom environment a unique name and a non-empty path").
			WithSuggestion("Use a Go duration such as '2s' for probe.timeout").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	key := func(parts ...string) string { return strings.Join(parts, keyDelimiter) }

	v.SetDefault("default_environment", defaults.DefaultEnvironment)
	v.SetDefault("exact_overrides", defaults.ExactOverrides)
	v.SetDefault("custom_environments", defaults.CustomEnvironments)
	v.SetDefault("auto_detect_on_startup", defaults.AutoDetectOnStartup)
	v.SetDefault("enable_statistics", defaults.EnableStatistics)
	v.SetDefault("show_recommendations", defaults.ShowRecommendations)
	v.SetDefault("auto_run_confirmation", defaults.AutoRunConfirmation)
	v.SetDefault(key("probe", "timeout"), string(defaults.Probe.Timeout))
	v.SetDefault(key("probe", "spawn_lookup"), defaults.Probe.SpawnLookup)
	v.SetDefault(key("ui", "color_scheme"), string(defaults.UI.ColorScheme))
	v.SetDefault(key("ui", "verbose"), defaults.UI.Verbose)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields are optional, so the unified value is not required to be concrete.
	result, err := cueutil.ParseAndDecodeString[map[string]any](
		configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig writes a default config file at path unless one exists.
// It reports whether a file was written.
func CreateDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := SaveTo(path, DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := FilePath(LoadOptions{})
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo validates cfg and writes it to path as CUE.
func SaveTo(path string, cfg *Config) error {
	if valid, errs := cfg.IsValid(); !valid {
		return errs[0]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// termroute configuration file\n")
	sb.WriteString("// Run 'termroute config --help' for the available settings.\n\n")

	sb.WriteString(fmt.Sprintf("default_environment: %q\n", cfg.DefaultEnvironment))

	// Rules, sorted for stable output
	sb.WriteString("\nrules: {\n")
	classes := make([]string, 0, len(cfg.Rules))
	for class := range cfg.Rules {
		classes = append(classes, class)
	}
	slices.Sort(classes)
	for _, class := range classes {
		sb.WriteString(fmt.Sprintf("\t%q: %q\n", class, cfg.Rules[class]))
	}
	sb.WriteString("}\n")

	if len(cfg.CustomEnvironments) > 0 {
		sb.WriteString("\ncustom_environments: [\n")
		for _, ce := range cfg.CustomEnvironments {
			fields := []string{}
			if ce.Name != "" {
				fields = append(fields, fmt.Sprintf("name: %q", ce.Name))
			}
			fields = append(fields, fmt.Sprintf("path: %q", ce.Path))
			if len(ce.Args) > 0 {
				args := make([]string, len(ce.Args))
				for i, arg := range ce.Args {
					args[i] = fmt.Sprintf("%q", arg)
				}
				fields = append(fields, fmt.Sprintf("args: [%s]", strings.Join(args, ", ")))
			}
			sb.WriteString(fmt.Sprintf("\t{%s},\n", strings.Join(fields, ", ")))
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("exact_overrides: %v\n", cfg.ExactOverrides))
	sb.WriteString(fmt.Sprintf("auto_detect_on_startup: %v\n", cfg.AutoDetectOnStartup))
	sb.WriteString(fmt.Sprintf("enable_statistics: %v\n", cfg.EnableStatistics))
	sb.WriteString(fmt.Sprintf("show_recommendations: %v\n", cfg.ShowRecommendations))
	sb.WriteString(fmt.Sprintf("auto_run_confirmation: %v\n", cfg.AutoRunConfirmation))

	sb.WriteString("\nprobe: {\n")
	if cfg.Probe.Timeout != "" {
		sb.WriteString(fmt.Sprintf("\ttimeout: %q\n", cfg.Probe.Timeout))
	}
	sb.WriteString(fmt.Sprintf("\tspawn_lookup: %v\n", cfg.Probe.SpawnLookup))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
