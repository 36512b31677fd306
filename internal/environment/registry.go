// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"termroute/pkg/platform"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds a single probe.
const DefaultProbeTimeout = 2 * time.Second

type (
	// Registry discovers which catalog entries are usable on the host.
	// A Registry is immutable after construction and safe for concurrent use.
	Registry struct {
		catalog Catalog
		prober  Prober
		timeout time.Duration
		logger  *log.Logger
	}

	// Option configures a Registry.
	Option func(*Registry)

	// DetectionResult groups one discovery pass for display.
	DetectionResult struct {
		Available   []Environment
		Unavailable []Environment
		Recommended []Environment
	}
)

// WithCatalog replaces the default catalog.
func WithCatalog(c Catalog) Option {
	return func(r *Registry) {
		r.catalog = c.Clone()
	}
}

// WithProber replaces the host prober.
func WithProber(p Prober) Option {
	return func(r *Registry) {
		r.prober = p
	}
}

// WithProbeTimeout sets the per-probe timeout. Non-positive values keep the default.
func WithProbeTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a registry over the host's default catalog.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		catalog: DefaultCatalog(runtime.GOOS),
		timeout: DefaultProbeTimeout,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.prober == nil {
		r.prober = NewHostProber(false)
	}
	return r
}

// Catalog returns a copy of the registry's catalog.
func (r *Registry) Catalog() Catalog {
	return r.catalog.Clone()
}

// Discover probes every catalog entry concurrently and returns one
// Environment per entry, in catalog order, with Usable populated.
// It never fails; probe errors are logged and mean "not usable".
func (r *Registry) Discover(ctx context.Context) []Environment {
	envs := make([]Environment, len(r.catalog))

	var g errgroup.Group
	for i, entry := range r.catalog {
		g.Go(func() error {
			envs[i] = entry.environment(r.probe(ctx, entry))
			return nil
		})
	}
	_ = g.Wait() // probes never return errors

	return envs
}

// Detect runs Discover and splits the result into deduplicated available and
// unavailable lists plus the recommended ranking.
func (r *Registry) Detect(ctx context.Context) DetectionResult {
	var available, unavailable []Environment
	for _, env := range r.Discover(ctx) {
		if env.Usable {
			available = append(available, env)
		} else {
			unavailable = append(unavailable, env)
		}
	}

	available = Dedupe(available)
	return DetectionResult{
		Available:   available,
		Unavailable: Dedupe(unavailable),
		Recommended: Recommend(available),
	}
}

func (r *Registry) probe(ctx context.Context, entry CatalogEntry) (usable bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("probe panicked", "environment", entry.Identity, "panic", p)
			usable = false
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.check(ctx, entry)
	if err != nil {
		r.logger.Debug("environment not usable", "environment", entry.Identity, "handle", entry.Handle, "error", err)
		return false
	}
	r.logger.Debug("environment usable", "environment", entry.Identity, "handle", entry.Handle)
	return true
}

func (r *Registry) check(ctx context.Context, entry CatalogEntry) error {
	handle := string(entry.Handle)
	switch entry.Probe {
	case ProbePath:
		return r.prober.LookPath(ctx, handle)
	case ProbeFile:
		fileErr := r.prober.Exists(ctx, handle)
		if fileErr == nil {
			return nil
		}
		if pathErr := r.prober.LookPath(ctx, platform.BaseName(handle)); pathErr != nil {
			return fmt.Errorf("%w; PATH fallback: %w", fileErr, pathErr)
		}
		return nil
	default:
		return fmt.Errorf("unknown probe kind %q", entry.Probe)
	}
}
