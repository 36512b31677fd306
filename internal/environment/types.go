// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// CategoryPowerShell is the general-purpose interactive shell.
	CategoryPowerShell Category = "powershell"
	// CategoryCmd is the native command prompt.
	CategoryCmd Category = "cmd"
	// CategoryGitBash is the POSIX-compatible shell.
	CategoryGitBash Category = "gitbash"
	// CategoryWSL is the Linux-subsystem shell.
	CategoryWSL Category = "wsl"
	// CategoryCustom is any user-defined environment.
	CategoryCustom Category = "custom"

	// ProbePath marks environments identified purely by an executable on PATH.
	ProbePath ProbeKind = "path"
	// ProbeFile marks environments with a fixed install path; a missing path
	// falls back to a PATH probe of the file's base name.
	ProbeFile ProbeKind = "file"
)

var (
	// ErrInvalidCategory is returned when a Category value is not recognized.
	ErrInvalidCategory = errors.New("invalid environment category")
	// ErrInvalidEnvironment is the sentinel error wrapped by InvalidEnvironmentError.
	ErrInvalidEnvironment = errors.New("invalid environment")

	// categoryPriority is the recommendation order: interactive shell first,
	// legacy command prompt last. Custom environments are never recommended.
	categoryPriority = []Category{CategoryPowerShell, CategoryGitBash, CategoryWSL, CategoryCmd}
)

type (
	// Category is the kind of execution environment.
	Category string

	// InvalidCategoryError is returned when a Category value is not recognized.
	// It wraps ErrInvalidCategory for errors.Is() compatibility.
	InvalidCategoryError struct {
		Value Category
	}

	// Identity is the stable display name of an environment, unique within a result set.
	Identity string

	// Handle is the opaque launch reference of an environment: an absolute path
	// or a command name looked up on PATH.
	Handle string

	// ProbeKind selects how an environment's usability is determined.
	ProbeKind string

	// Environment is a target execution context produced by one discovery pass.
	Environment struct {
		Identity Identity `json:"identity"`
		Handle   Handle   `json:"handle"`
		Category Category `json:"category"`
		Usable   bool     `json:"usable"`
		// Args are extra launch arguments; only custom environments carry them.
		Args []string `json:"args,omitempty"`
	}

	// InvalidEnvironmentError is returned when an Environment has invalid fields.
	InvalidEnvironmentError struct {
		FieldErrors []error
	}
)

// Categories returns every recognized category, custom last.
func Categories() []Category {
	return []Category{CategoryPowerShell, CategoryCmd, CategoryGitBash, CategoryWSL, CategoryCustom}
}

// CategoryPriority returns the fixed recommendation order.
func CategoryPriority() []Category {
	return slices.Clone(categoryPriority)
}

// String returns the category token.
func (c Category) String() string { return string(c) }

// IsValid reports whether the category is one of the recognized tokens.
func (c Category) IsValid() (bool, []error) {
	switch c {
	case CategoryPowerShell, CategoryCmd, CategoryGitBash, CategoryWSL, CategoryCustom:
		return true, nil
	default:
		return false, []error{&InvalidCategoryError{Value: c}}
	}
}

// Error implements the error interface for InvalidCategoryError.
func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid environment category %q (valid: powershell, cmd, gitbash, wsl, custom)", e.Value)
}

// Unwrap returns ErrInvalidCategory for errors.Is() compatibility.
func (e *InvalidCategoryError) Unwrap() error { return ErrInvalidCategory }

// String returns the identity as a string.
func (i Identity) String() string { return string(i) }

// Matches reports whether name refers to this identity, ignoring case and
// surrounding whitespace.
func (i Identity) Matches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), string(i))
}

// String returns the handle as a string.
func (h Handle) String() string { return string(h) }

// IsValid reports whether the environment can be handed to the resolver.
func (e Environment) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(string(e.Identity)) == "" {
		errs = append(errs, fmt.Errorf("identity must not be empty"))
	}
	if strings.TrimSpace(string(e.Handle)) == "" {
		errs = append(errs, fmt.Errorf("environment %q: handle must not be empty", e.Identity))
	}
	if valid, fieldErrs := e.Category.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidEnvironmentError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidEnvironmentError.
func (e *InvalidEnvironmentError) Error() string {
	return fmt.Sprintf("invalid environment: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidEnvironment for errors.Is() compatibility.
func (e *InvalidEnvironmentError) Unwrap() error { return ErrInvalidEnvironment }

// FindByCategory returns the first environment of the given category.
func FindByCategory(envs []Environment, category Category) (Environment, bool) {
	for _, env := range envs {
		if env.Category == category {
			return env, true
		}
	}
	return Environment{}, false
}

// FindByIdentity returns the first environment whose identity matches name exactly.
func FindByIdentity(envs []Environment, name string) (Environment, bool) {
	for _, env := range envs {
		if string(env.Identity) == name {
			return env, true
		}
	}
	return Environment{}, false
}

// FindByName returns the first environment whose identity matches name
// case-insensitively.
func FindByName(envs []Environment, name string) (Environment, bool) {
	for _, env := range envs {
		if env.Identity.Matches(name) {
			return env, true
		}
	}
	return Environment{}, false
}
