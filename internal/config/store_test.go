// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"termroute/internal/classify"
	"termroute/internal/testutil"
)

func TestStore_ReadsFileOnEveryLookup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.cue")
	store := NewStore(context.Background(), NewProvider(), LoadOptions{ConfigDirPath: dir}, nil)

	// No file: built-in defaults.
	if got, ok := store.Rule("git"); !ok || got != "Git Bash" {
		t.Errorf("Rule(git) = %q, %v; want default rule", got, ok)
	}
	if got := store.DefaultEnvironmentName(); got != "PowerShell" {
		t.Errorf("DefaultEnvironmentName() = %q", got)
	}

	testutil.MustWriteFile(t, path, "default_environment: \"Zsh\"\nrules: cargo: \"WSL\"\n")
	if got, ok := store.Rule(classify.Classify("cargo build")); !ok || got != "WSL" {
		t.Errorf("Rule(cargo) = %q, %v; edit not observed", got, ok)
	}
	if _, ok := store.Rule("git"); ok {
		t.Error("file rules should replace the defaults")
	}
	if got := store.DefaultEnvironmentName(); got != "Zsh" {
		t.Errorf("DefaultEnvironmentName() = %q, want Zsh", got)
	}
	if store.Err() != nil {
		t.Errorf("Err() = %v", store.Err())
	}
}

func TestStore_FallsBackOnBrokenFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), "rules: {\n")
	store := NewStore(context.Background(), NewProvider(), LoadOptions{ConfigDirPath: dir}, nil)

	if got := store.DefaultEnvironmentName(); got != DefaultEnvironmentName {
		t.Errorf("DefaultEnvironmentName() = %q, want built-in default", got)
	}
	if store.Err() == nil {
		t.Error("Err() should report the load failure")
	}
	if _, ok := store.Rule(classify.Unknown); ok {
		t.Error("unknown class should have no rule")
	}
}

func TestStore_StopsLoadingWhenContextDone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), "default_environment: \"Zsh\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	store := NewStore(ctx, NewProvider(), LoadOptions{ConfigDirPath: dir}, nil)
	if got := store.DefaultEnvironmentName(); got != "Zsh" {
		t.Fatalf("DefaultEnvironmentName() = %q, want Zsh", got)
	}

	cancel()
	if got := store.DefaultEnvironmentName(); got != DefaultEnvironmentName {
		t.Errorf("DefaultEnvironmentName() after cancel = %q, want built-in default", got)
	}
	if err := store.Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", err)
	}
}
