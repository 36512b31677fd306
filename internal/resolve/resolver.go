// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"maps"

	"termroute/internal/classify"
	"termroute/internal/environment"
)

const (
	// SourceOverride means a user rule named a category that had a usable environment.
	SourceOverride Source = "override"
	// SourceOverrideIdentity means a user rule named a usable environment directly
	// and exact identity overrides were enabled.
	SourceOverrideIdentity Source = "override-identity"
	// SourceBuiltin means the built-in rule table picked the category.
	SourceBuiltin Source = "builtin"
	// SourceDefaultPolicy means the token-shape policy picked the category.
	SourceDefaultPolicy Source = "default-policy"
	// SourceDefaultEnvironment means the configured default environment was used.
	SourceDefaultEnvironment Source = "default-environment"
	// SourceFirstUsable means the first usable environment was used.
	SourceFirstUsable Source = "first-usable"
)

// ErrNoUsableEnvironment is returned when Resolve is given no usable environments.
var ErrNoUsableEnvironment = errors.New("no usable environment")

type (
	// Source records which decision step produced a Result.
	Source string

	// Result is the outcome of a single resolution.
	Result struct {
		Chosen        environment.Environment `json:"chosen"`
		Class         classify.CommandClass   `json:"class"`
		Source        Source                  `json:"source"`
		Justification string                  `json:"justification"`
	}

	// NoUsableEnvironmentError is returned when no candidate environment is usable.
	// It wraps ErrNoUsableEnvironment for errors.Is() compatibility.
	NoUsableEnvironmentError struct {
		Class classify.CommandClass
	}

	// Resolver chooses environments for command lines. It holds no mutable state
	// and is safe for concurrent use when its store is.
	Resolver struct {
		store         PreferenceStore
		rules         RuleTable
		exactOverride bool
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// Error implements the error interface.
func (e *NoUsableEnvironmentError) Error() string {
	if e.Class.IsUnknown() {
		return "no usable environment to run the command"
	}
	return fmt.Sprintf("no usable environment to run %q", e.Class)
}

// Unwrap returns ErrNoUsableEnvironment for errors.Is() compatibility.
func (e *NoUsableEnvironmentError) Unwrap() error { return ErrNoUsableEnvironment }

// WithRules replaces the built-in rule table. The table is copied; a nil
// table keeps the built-in rules.
func WithRules(rules RuleTable) Option {
	return func(r *Resolver) {
		r.rules = maps.Clone(rules)
	}
}

// WithExactOverrides makes an override value that equals the identity of a
// usable environment (ignoring case) choose that environment, ahead of the
// category keyword match. Off by default, so "Git Bash (x86)" selects the
// first usable gitbash environment like any other gitbash name.
func WithExactOverrides(enabled bool) Option {
	return func(r *Resolver) {
		r.exactOverride = enabled
	}
}

// New creates a Resolver backed by store. A nil store behaves as an empty one.
func New(store PreferenceStore, opts ...Option) *Resolver {
	if store == nil {
		store = &StaticStore{}
	}
	r := &Resolver{store: store}
	for _, opt := range opts {
		opt(r)
	}
	if r.rules == nil {
		r.rules = BuiltinRules()
	}
	return r
}

// Rules returns a copy of the resolver's rule table.
func (r *Resolver) Rules() RuleTable {
	return maps.Clone(r.rules)
}

// Resolve picks the environment from usable that should run command.
// It fails only when usable is empty; otherwise the chosen environment is
// always an element of usable.
func (r *Resolver) Resolve(command string, usable []environment.Environment) (Result, error) {
	class := classify.Classify(command)
	if len(usable) == 0 {
		return Result{Class: class}, &NoUsableEnvironmentError{Class: class}
	}

	target, source, chosen, ok := r.target(class, usable)
	if !ok {
		if env, found := environment.FindByIdentity(usable, r.store.DefaultEnvironmentName()); found {
			chosen, source, ok = env, SourceDefaultEnvironment, true
		}
	}
	if !ok {
		chosen, source = usable[0], SourceFirstUsable
	}

	justification := explainClass(class, chosen)
	if source == SourceDefaultEnvironment || source == SourceFirstUsable {
		justification = fmt.Sprintf("no usable %s environment; %s", target, justification)
	}

	return Result{
		Chosen:        chosen,
		Class:         class,
		Source:        source,
		Justification: justification,
	}, nil
}

// Target returns the category a command would be routed to before
// availability is considered, and the step that chose it. An override that
// names no known category yields CategoryCustom.
func (r *Resolver) Target(command string) (environment.Category, Source) {
	class := classify.Classify(command)
	if value, ok := r.store.Rule(class); ok {
		return CategoryForName(value), SourceOverride
	}
	return r.policyCategory(class)
}

// target applies the override and policy steps. It returns the target
// category and, when an environment of that category is usable, the chosen
// environment. An override that maps to custom picks the first usable custom
// environment.
func (r *Resolver) target(class classify.CommandClass, usable []environment.Environment) (environment.Category, Source, environment.Environment, bool) {
	if value, ok := r.store.Rule(class); ok {
		if r.exactOverride {
			if env, found := environment.FindByName(usable, value); found {
				return env.Category, SourceOverrideIdentity, env, true
			}
		}
		category := CategoryForName(value)
		env, found := environment.FindByCategory(usable, category)
		return category, SourceOverride, env, found
	}

	category, source := r.policyCategory(class)
	env, found := environment.FindByCategory(usable, category)
	return category, source, env, found
}

func (r *Resolver) policyCategory(class classify.CommandClass) (environment.Category, Source) {
	if category, ok := r.rules.Lookup(class); ok {
		return category, SourceBuiltin
	}
	return defaultCategory(class), SourceDefaultPolicy
}
