// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"termroute/internal/config"
	"termroute/internal/environment"
	"termroute/internal/issue"
	"termroute/internal/launcher"
	"termroute/internal/resolve"
	"termroute/internal/stats"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; all Cobra command handlers receive an App reference.
	App struct {
		Config   config.Provider
		Prober   environment.Prober
		Launcher *launcher.Launcher
		Clock    stats.Clock

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger

		verbose    bool
		configPath string
		issueStyle string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests supply a fake Prober to
	// make discovery independent of the host.
	Dependencies struct {
		Config config.Provider
		Prober environment.Prober
		Clock  stats.Clock
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.WarnLevel,
	})

	return &App{
		Config:     deps.Config,
		Prober:     deps.Prober,
		Launcher:   launcher.New(launcher.WithLogger(logger)),
		Clock:      deps.Clock,
		stdin:      deps.Stdin,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		logger:     logger,
		issueStyle: "auto",
	}, nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

// setVerbose switches the logger to debug output.
func (a *App) setVerbose(verbose bool) {
	a.verbose = a.verbose || verbose
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
}

// loadConfig loads configuration for read-only commands. With the default
// path a broken file degrades to defaults with a warning; an explicit
// --config path must load.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err == nil {
		a.applyUI(cfg)
		return cfg, nil
	}
	if a.configPath != "" || errors.Is(err, context.Canceled) {
		return nil, err
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	return config.DefaultConfig(), nil
}

// loadConfigStrict loads configuration for commands that rewrite the file,
// so a broken file is never overwritten with defaults.
func (a *App) loadConfigStrict(ctx context.Context) (*config.Config, string, error) {
	path, err := config.FilePath(a.loadOptions())
	if err != nil {
		return nil, "", err
	}
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, "", err
	}
	a.applyUI(cfg)
	return cfg, path, nil
}

func (a *App) applyUI(cfg *config.Config) {
	a.setVerbose(cfg.UI.Verbose)
	if cfg.UI.ColorScheme != "" && cfg.UI.ColorScheme != config.ColorSchemeAuto {
		a.issueStyle = cfg.UI.ColorScheme.String()
	}
}

// registry builds the discovery registry for cfg: the host catalog plus the
// configured custom environments.
func (a *App) registry(cfg *config.Config) *environment.Registry {
	opts := []environment.Option{
		environment.WithCatalog(environment.DefaultCatalog(runtime.GOOS).With(cfg.CatalogEntries()...)),
		environment.WithLogger(a.logger),
	}
	if timeout, err := cfg.Probe.Timeout.Duration(); err == nil {
		opts = append(opts, environment.WithProbeTimeout(timeout))
	}
	if a.Prober != nil {
		opts = append(opts, environment.WithProber(a.Prober))
	} else {
		opts = append(opts, environment.WithProber(environment.NewHostProber(cfg.Probe.SpawnLookup)))
	}
	return environment.NewRegistry(opts...)
}

// usableEnvironments runs one discovery pass and returns the deduplicated
// usable environments in catalog order.
func (a *App) usableEnvironments(ctx context.Context, cfg *config.Config) []environment.Environment {
	var usable []environment.Environment
	for _, env := range a.registry(cfg).Discover(ctx) {
		if env.Usable {
			usable = append(usable, env)
		}
	}
	return environment.Dedupe(usable)
}

// resolver returns a resolver whose preferences are read from the config
// file on every lookup.
func (a *App) resolver(ctx context.Context, cfg *config.Config) *resolve.Resolver {
	store := config.NewStore(ctx, a.Config, a.loadOptions(), a.logger)
	return resolve.New(store, resolve.WithExactOverrides(cfg.ExactOverrides))
}

// collector opens the statistics file next to the config file.
func (a *App) collector(cfg *config.Config) (*stats.Collector, error) {
	path, err := a.statsPath()
	if err != nil {
		return nil, err
	}
	opts := []stats.Option{stats.WithLogger(a.logger)}
	if a.Clock != nil {
		opts = append(opts, stats.WithClock(a.Clock))
	}
	return stats.New(path, cfg.EnableStatistics, opts...)
}

func (a *App) statsPath() (string, error) {
	cfgPath, err := config.FilePath(a.loadOptions())
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), stats.FileName), nil
}

// renderIssue prints the documented issue for id to stderr.
func (a *App) renderIssue(id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(a.issueStyle)
	if err != nil {
		a.logger.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}
