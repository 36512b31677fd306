// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"maps"

	"termroute/internal/classify"
)

type (
	// PreferenceStore supplies user preferences to the resolver. Implementations
	// are consulted on every resolution and must not cache across calls if the
	// underlying preferences can change.
	PreferenceStore interface {
		// Rule returns the override environment name configured for class.
		Rule(class classify.CommandClass) (string, bool)
		// DefaultEnvironmentName returns the configured default environment name.
		DefaultEnvironmentName() string
	}

	// StaticStore is an in-memory PreferenceStore.
	StaticStore struct {
		Rules              map[classify.CommandClass]string
		DefaultEnvironment string
	}
)

// NewStaticStore returns a StaticStore holding a copy of rules.
func NewStaticStore(defaultEnv string, rules map[classify.CommandClass]string) *StaticStore {
	return &StaticStore{
		Rules:              maps.Clone(rules),
		DefaultEnvironment: defaultEnv,
	}
}

// Rule implements PreferenceStore.
func (s *StaticStore) Rule(class classify.CommandClass) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.Rules[class]
	return v, ok
}

// DefaultEnvironmentName implements PreferenceStore.
func (s *StaticStore) DefaultEnvironmentName() string {
	if s == nil {
		return ""
	}
	return s.DefaultEnvironment
}
