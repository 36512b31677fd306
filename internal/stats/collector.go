// SPDX-License-Identifier: MPL-2.0

package stats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"termroute/internal/classify"
)

// FileName is the statistics file name inside the configuration directory.
const FileName = "stats.toml"

type (
	// Clock supplies the current time.
	Clock interface {
		Now() time.Time
	}

	// Collector records launches and aggregates them. It is safe for
	// concurrent use.
	Collector struct {
		path    string
		enabled bool
		clock   Clock
		logger  *log.Logger

		mu      sync.Mutex
		totals  Totals
		history []Entry
	}

	// Option configures a Collector.
	Option func(*Collector)

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// WithClock sets the clock used to timestamp entries.
func WithClock(clock Clock) Option {
	return func(c *Collector) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Collector persisted at path and loads any existing data.
// An empty path keeps statistics in memory only. A disabled collector
// ignores Record but still reports previously stored data.
func New(path string, enabled bool, opts ...Option) (*Collector, error) {
	c := &Collector{
		path:    path,
		enabled: enabled,
		clock:   systemClock{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.totals = newTotals(c.clock.Now())

	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the statistics file path, or "" for an in-memory collector.
func (c *Collector) Path() string { return c.path }

// Enabled reports whether Record stores anything.
func (c *Collector) Enabled() bool { return c.enabled }

// CheckEnabled returns ErrStatisticsDisabled when collection is off.
func (c *Collector) CheckEnabled() error {
	if !c.enabled {
		return ErrStatisticsDisabled
	}
	return nil
}

// Record stores one launch of command in environment. Only the command
// class is kept. Blank commands and disabled collectors are no-ops.
func (c *Collector) Record(command, environment string, mode Mode) error {
	if !c.enabled {
		return nil
	}
	if valid, errs := mode.IsValid(); !valid {
		return errs[0]
	}
	class := classify.Classify(command)
	if class.IsUnknown() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Class:       class.String(),
		Environment: environment,
		Mode:        mode,
		Timestamp:   c.clock.Now(),
	}
	next := snapshot{Totals: c.totals.Clone(), History: append(slices.Clone(c.history), entry)}
	if len(next.History) > MaxHistory {
		next.History = next.History[len(next.History)-MaxHistory:]
	}
	next.Totals.add(entry)

	return c.commitLocked(next)
}

// Totals returns a copy of the aggregated counters.
func (c *Collector) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals.Clone()
}

// History returns up to limit most recent entries, oldest first. A limit
// of zero or less returns the whole history.
func (c *Collector) History(limit int) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit <= 0 || limit >= len(c.history) {
		return slices.Clone(c.history)
	}
	return slices.Clone(c.history[len(c.history)-limit:])
}

// Clear drops all statistics and persists the empty state.
func (c *Collector) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commitLocked(snapshot{Totals: newTotals(c.clock.Now())})
}

// Export encodes the totals and history as TOML.
func (c *Collector) Export() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return encode(snapshot{Totals: c.totals, History: c.history})
}

func encode(snap snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("failed to encode statistics: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Collector) load() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read statistics file: %w", err)
	}

	var snap snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse statistics file %s: %w", c.path, err)
	}
	if snap.Totals.ByClass == nil {
		snap.Totals.ByClass = map[string]int{}
	}
	if snap.Totals.ByEnvironment == nil {
		snap.Totals.ByEnvironment = map[string]int{}
	}
	if len(snap.History) > MaxHistory {
		snap.History = snap.History[len(snap.History)-MaxHistory:]
	}
	c.totals = snap.Totals
	c.history = snap.History
	c.logger.Debug("statistics loaded", "path", c.path, "commands", c.totals.Commands)
	return nil
}

// commitLocked persists next and only then makes it the in-memory state, so
// a failed write leaves the collector matching the file.
func (c *Collector) commitLocked(next snapshot) error {
	if err := c.write(next); err != nil {
		return err
	}
	c.totals = next.Totals
	c.history = next.History
	return nil
}

func (c *Collector) write(snap snapshot) error {
	if c.path == "" {
		return nil
	}
	data, err := encode(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write statistics file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename statistics file: %w", err)
	}
	return nil
}
