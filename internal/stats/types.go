// SPDX-License-Identifier: MPL-2.0

package stats

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

const (
	// ModeManual marks a command launched in an explicitly chosen environment.
	ModeManual Mode = "manual"
	// ModeAuto marks a command launched in a resolved environment.
	ModeAuto Mode = "auto"

	// MaxHistory is the number of history entries kept.
	MaxHistory = 1000
	// MaxMostUsed is the length of the most-used class ranking.
	MaxMostUsed = 20
)

var (
	// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
	ErrInvalidMode = errors.New("invalid execution mode")
	// ErrStatisticsDisabled is returned when statistics are requested while
	// collection is turned off.
	ErrStatisticsDisabled = errors.New("statistics collection is disabled")
)

type (
	// Mode records how the target environment was picked.
	Mode string

	// InvalidModeError is returned when a Mode value is not recognized.
	InvalidModeError struct {
		Value Mode
	}

	// Entry is one recorded launch.
	Entry struct {
		Class       string    `toml:"class" json:"class"`
		Environment string    `toml:"environment" json:"environment"`
		Mode        Mode      `toml:"mode" json:"mode"`
		Timestamp   time.Time `toml:"timestamp" json:"timestamp"`
	}

	// ClassCount pairs a command class with its launch count.
	ClassCount struct {
		Class string `toml:"class" json:"class"`
		Count int    `toml:"count" json:"count"`
	}

	// Totals are the aggregated counters.
	Totals struct {
		Commands      int            `toml:"commands" json:"commands"`
		ByClass       map[string]int `toml:"by_class" json:"by_class"`
		ByEnvironment map[string]int `toml:"by_environment" json:"by_environment"`
		Auto          int            `toml:"auto" json:"auto"`
		Manual        int            `toml:"manual" json:"manual"`
		MostUsed      []ClassCount   `toml:"most_used" json:"most_used"`
		LastUpdated   time.Time      `toml:"last_updated" json:"last_updated"`
	}

	// snapshot is the persisted document.
	snapshot struct {
		Totals  Totals  `toml:"totals"`
		History []Entry `toml:"history"`
	}
)

// String returns the mode token.
func (m Mode) String() string { return string(m) }

// IsValid reports whether the mode is manual or auto.
func (m Mode) IsValid() (bool, []error) {
	switch m {
	case ModeManual, ModeAuto:
		return true, nil
	default:
		return false, []error{&InvalidModeError{Value: m}}
	}
}

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid execution mode %q (valid: manual, auto)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

func newTotals(now time.Time) Totals {
	return Totals{
		ByClass:       map[string]int{},
		ByEnvironment: map[string]int{},
		LastUpdated:   now,
	}
}

// Clone returns a deep copy of the totals.
func (t Totals) Clone() Totals {
	c := t
	c.ByClass = maps.Clone(t.ByClass)
	c.ByEnvironment = maps.Clone(t.ByEnvironment)
	c.MostUsed = slices.Clone(t.MostUsed)
	return c
}

func (t *Totals) add(e Entry) {
	t.Commands++
	t.ByClass[e.Class]++
	t.ByEnvironment[e.Environment]++
	if e.Mode == ModeAuto {
		t.Auto++
	} else {
		t.Manual++
	}

	t.MostUsed = mostUsed(t.ByClass)
	t.LastUpdated = e.Timestamp
}

// mostUsed ranks classes by count, ties by name, keeping the top MaxMostUsed.
func mostUsed(byClass map[string]int) []ClassCount {
	ranked := make([]ClassCount, 0, len(byClass))
	for class, n := range byClass {
		ranked = append(ranked, ClassCount{Class: class, Count: n})
	}
	slices.SortFunc(ranked, func(a, b ClassCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Class, b.Class)
	})
	if len(ranked) > MaxMostUsed {
		ranked = ranked[:MaxMostUsed]
	}
	return ranked
}
