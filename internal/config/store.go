// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"io"
	"strings"
	"sync"

	"termroute/internal/classify"
	"termroute/internal/resolve"

	"github.com/charmbracelet/log"
)

var _ resolve.PreferenceStore = (*Store)(nil)

// Store serves resolver preferences from the config file. Every lookup loads
// the file through the Provider so edits are visible without a restart; a
// failed load falls back to the built-in defaults and is reported by Err.
// Loads stop once the context given to NewStore is done.
type Store struct {
	ctx      context.Context
	provider Provider
	opts     LoadOptions
	logger   *log.Logger

	mu      sync.Mutex
	lastErr error
}

// NewStore creates a Store reading through provider with opts for as long as
// ctx is live.
func NewStore(ctx context.Context, provider Provider, opts LoadOptions, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{ctx: ctx, provider: provider, opts: opts, logger: logger}
}

// Rule implements resolve.PreferenceStore.
func (s *Store) Rule(class classify.CommandClass) (string, bool) {
	cfg := s.load()
	target, ok := cfg.Rules[class.String()]
	if !ok || strings.TrimSpace(target) == "" {
		return "", false
	}
	return target, true
}

// DefaultEnvironmentName implements resolve.PreferenceStore.
func (s *Store) DefaultEnvironmentName() string {
	return s.load().DefaultEnvironment
}

// Err returns the error from the most recent load, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) load() *Config {
	cfg, err := s.provider.Load(s.ctx, s.opts)

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("using default preferences", "error", err)
		return DefaultConfig()
	}
	return cfg
}
