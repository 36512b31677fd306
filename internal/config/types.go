// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"termroute/internal/environment"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultEnvironmentName is the environment used when no rule or category matches.
	DefaultEnvironmentName = "PowerShell"
	// DefaultProbeTimeout is the per-probe timeout written to new config files.
	DefaultProbeTimeout = "2s"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidProbeTimeout is returned when a probe timeout is not a positive Go duration.
	ErrInvalidProbeTimeout = errors.New("invalid probe timeout")
	// ErrInvalidRule is returned when an override rule has an empty class or target.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidCustomEnvironment is the sentinel error wrapped by InvalidCustomEnvironmentError.
	ErrInvalidCustomEnvironment = errors.New("invalid custom environment")
	// ErrDuplicateCustomEnvironment is returned when two custom environments share a name.
	ErrDuplicateCustomEnvironment = errors.New("duplicate custom environment")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ProbeTimeout is a Go duration string bounding a single discovery probe.
	ProbeTimeout string

	// InvalidProbeTimeoutError is returned when a ProbeTimeout does not parse
	// to a positive duration.
	InvalidProbeTimeoutError struct {
		Value ProbeTimeout
	}

	// InvalidRuleError is returned when a rule entry is empty on either side.
	InvalidRuleError struct {
		Class  string
		Target string
	}

	// InvalidCustomEnvironmentError is returned when a CustomEnvironment has invalid fields.
	InvalidCustomEnvironmentError struct {
		Name        string
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultEnvironment names the environment used when no category matches.
		DefaultEnvironment string `json:"default_environment" mapstructure:"default_environment" toml:"default_environment"`
		// Rules maps command classes to environment names. Names are mapped to a
		// category by keyword.
		Rules map[string]string `json:"rules" mapstructure:"rules" toml:"rules"`
		// ExactOverrides lets a rule that names a usable environment exactly
		// choose it before the category keyword match.
		ExactOverrides bool `json:"exact_overrides" mapstructure:"exact_overrides" toml:"exact_overrides"`
		// CustomEnvironments are user-defined shells added to discovery.
		CustomEnvironments []CustomEnvironment `json:"custom_environments" mapstructure:"custom_environments" toml:"custom_environments"`
		// AutoDetectOnStartup runs discovery when the CLI starts without a subcommand.
		AutoDetectOnStartup bool `json:"auto_detect_on_startup" mapstructure:"auto_detect_on_startup" toml:"auto_detect_on_startup"`
		// EnableStatistics records anonymized usage for each launched command.
		EnableStatistics bool `json:"enable_statistics" mapstructure:"enable_statistics" toml:"enable_statistics"`
		// ShowRecommendations prints the recommended environments after resolution.
		ShowRecommendations bool `json:"show_recommendations" mapstructure:"show_recommendations" toml:"show_recommendations"`
		// AutoRunConfirmation asks before launching an automatically chosen environment.
		AutoRunConfirmation bool `json:"auto_run_confirmation" mapstructure:"auto_run_confirmation" toml:"auto_run_confirmation"`
		// Probe configures environment discovery
		Probe ProbeConfig `json:"probe" mapstructure:"probe" toml:"probe"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// CustomEnvironment is a user-defined shell.
	CustomEnvironment struct {
		// Name is the identity; empty means the executable's file name.
		Name string `json:"name" mapstructure:"name" toml:"name"`
		// Path is the executable path or a command name on PATH.
		Path string `json:"path" mapstructure:"path" toml:"path"`
		// Args are passed before the command text on launch.
		Args []string `json:"args,omitempty" mapstructure:"args" toml:"args,omitempty"`
	}

	// ProbeConfig configures environment discovery.
	ProbeConfig struct {
		// Timeout bounds each probe (Go duration, default "2s").
		Timeout ProbeTimeout `json:"timeout" mapstructure:"timeout" toml:"timeout"`
		// SpawnLookup runs where/which instead of searching PATH in-process.
		SpawnLookup bool `json:"spawn_lookup" mapstructure:"spawn_lookup" toml:"spawn_lookup"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultRules returns the override rules written to new config files.
func DefaultRules() map[string]string {
	return map[string]string{
		"npm":     "PowerShell",
		"node":    "PowerShell",
		"yarn":    "PowerShell",
		"pnpm":    "PowerShell",
		"git":     "Git Bash",
		"python":  "CMD",
		"pip":     "CMD",
		"docker":  "PowerShell",
		"kubectl": "PowerShell",
		"bash":    "Git Bash",
		"sh":      "Git Bash",
		"wsl":     "WSL",
		"linux":   "WSL",
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultEnvironment:  DefaultEnvironmentName,
		Rules:               DefaultRules(),
		ExactOverrides:      false,
		CustomEnvironments:  []CustomEnvironment{},
		AutoDetectOnStartup: true,
		EnableStatistics:    false,
		ShowRecommendations: true,
		AutoRunConfirmation: true,
		Probe: ProbeConfig{
			Timeout:     DefaultProbeTimeout,
			SpawnLookup: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Rules = maps.Clone(c.Rules)
	out.CustomEnvironments = make([]CustomEnvironment, len(c.CustomEnvironments))
	for i, ce := range c.CustomEnvironments {
		ce.Args = append([]string(nil), ce.Args...)
		out.CustomEnvironments[i] = ce
	}
	return &out
}

// CatalogEntries converts the custom environments to discovery catalog entries.
func (c *Config) CatalogEntries() []environment.CatalogEntry {
	entries := make([]environment.CatalogEntry, 0, len(c.CustomEnvironments))
	for _, ce := range c.CustomEnvironments {
		entries = append(entries, environment.CustomEntry(ce.Name, ce.Path, ce.Args))
	}
	return entries
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for class, target := range c.Rules {
		if strings.TrimSpace(class) == "" || strings.TrimSpace(target) == "" {
			errs = append(errs, &InvalidRuleError{Class: class, Target: target})
		}
	}
	seen := make(map[string]bool, len(c.CustomEnvironments))
	for _, ce := range c.CustomEnvironments {
		if valid, fieldErrs := ce.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
			continue
		}
		name := strings.ToLower(ce.Identity())
		if seen[name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateCustomEnvironment, ce.Identity()))
		}
		seen[name] = true
	}
	if valid, fieldErrs := c.Probe.Timeout.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Identity returns the name the environment is known by.
func (ce CustomEnvironment) Identity() string {
	return string(environment.CustomEntry(ce.Name, ce.Path, nil).Identity)
}

// IsValid returns whether the CustomEnvironment has a usable path.
func (ce CustomEnvironment) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(ce.Path) == "" {
		errs = append(errs, errors.New("path must not be empty"))
	}
	for i, arg := range ce.Args {
		if arg == "" {
			errs = append(errs, fmt.Errorf("args[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCustomEnvironmentError{Name: ce.Name, FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCustomEnvironmentError.
func (e *InvalidCustomEnvironmentError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid custom environment %q: %s", e.Name, strings.Join(msgs, ", "))
}

// Unwrap returns ErrInvalidCustomEnvironment for errors.Is() compatibility.
func (e *InvalidCustomEnvironmentError) Unwrap() error { return ErrInvalidCustomEnvironment }

// Error implements the error interface for InvalidRuleError.
func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule %q -> %q: class and environment must be non-empty", e.Class, e.Target)
}

// Unwrap returns ErrInvalidRule for errors.Is() compatibility.
func (e *InvalidRuleError) Unwrap() error { return ErrInvalidRule }

// String returns the string representation of the ProbeTimeout.
func (p ProbeTimeout) String() string { return string(p) }

// Duration parses the timeout. The zero value means the registry default.
func (p ProbeTimeout) Duration() (time.Duration, error) {
	if p == "" {
		return environment.DefaultProbeTimeout, nil
	}
	d, err := time.ParseDuration(string(p))
	if err != nil || d <= 0 {
		return 0, &InvalidProbeTimeoutError{Value: p}
	}
	return d, nil
}

// IsValid returns whether the ProbeTimeout parses to a positive duration.
func (p ProbeTimeout) IsValid() (bool, []error) {
	if _, err := p.Duration(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface for InvalidProbeTimeoutError.
func (e *InvalidProbeTimeoutError) Error() string {
	return fmt.Sprintf("invalid probe timeout %q: must be a positive duration such as 500ms or 2s", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidProbeTimeoutError) Unwrap() error { return ErrInvalidProbeTimeout }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}
