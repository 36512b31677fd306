// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"slices"
	"strings"

	"termroute/internal/classify"
)

// SetDefaultEnvironment sets the fallback environment name.
func (c *Config) SetDefaultEnvironment(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: default environment must not be empty", ErrInvalidConfig)
	}
	c.DefaultEnvironment = name
	return nil
}

// SetRule routes commands of the class of command to the named environment.
// It returns the class the rule was stored under.
func (c *Config) SetRule(command, target string) (classify.CommandClass, error) {
	class := classify.Classify(command)
	target = strings.TrimSpace(target)
	if class.IsUnknown() || target == "" {
		return class, &InvalidRuleError{Class: class.String(), Target: target}
	}
	if c.Rules == nil {
		c.Rules = map[string]string{}
	}
	c.Rules[class.String()] = target
	return class, nil
}

// RemoveRule deletes the rule for the class of command and reports whether one existed.
func (c *Config) RemoveRule(command string) bool {
	class := classify.Classify(command).String()
	if _, ok := c.Rules[class]; !ok {
		return false
	}
	delete(c.Rules, class)
	return true
}

// AddCustomEnvironment appends ce. Names must be unique, ignoring case.
func (c *Config) AddCustomEnvironment(ce CustomEnvironment) error {
	if valid, errs := ce.IsValid(); !valid {
		return errs[0]
	}
	if c.hasCustomEnvironment(ce.Identity()) {
		return fmt.Errorf("%w: %q", ErrDuplicateCustomEnvironment, ce.Identity())
	}
	ce.Args = slices.Clone(ce.Args)
	c.CustomEnvironments = append(c.CustomEnvironments, ce)
	return nil
}

// RemoveCustomEnvironment removes the custom environment called name and
// reports whether one was removed.
func (c *Config) RemoveCustomEnvironment(name string) bool {
	before := len(c.CustomEnvironments)
	c.CustomEnvironments = slices.DeleteFunc(c.CustomEnvironments, func(ce CustomEnvironment) bool {
		return strings.EqualFold(ce.Identity(), strings.TrimSpace(name))
	})
	return len(c.CustomEnvironments) != before
}

func (c *Config) hasCustomEnvironment(name string) bool {
	return slices.ContainsFunc(c.CustomEnvironments, func(ce CustomEnvironment) bool {
		return strings.EqualFold(ce.Identity(), name)
	})
}
