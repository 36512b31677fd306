// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"termroute/pkg/platform"
)

type (
	// Prober answers the two host questions discovery needs. Implementations
	// must honor ctx cancellation; any returned error means "not usable".
	Prober interface {
		// LookPath reports whether an executable named name is on PATH.
		LookPath(ctx context.Context, name string) error
		// Exists reports whether a regular file exists at path.
		Exists(ctx context.Context, path string) error
	}

	// HostProber probes the real host.
	HostProber struct {
		// SpawnLookup runs where/which as a child process instead of exec.LookPath.
		SpawnLookup bool
		// GOOS selects the lookup command; empty means runtime.GOOS.
		GOOS string
		// Sandbox forwards spawned lookups to the host when set.
		Sandbox platform.SandboxType
	}
)

// NewHostProber returns a prober for the current host.
func NewHostProber(spawnLookup bool) *HostProber {
	return &HostProber{
		SpawnLookup: spawnLookup,
		GOOS:        runtime.GOOS,
		Sandbox:     platform.DetectSandbox(),
	}
}

// LookPath implements Prober.
func (p *HostProber) LookPath(ctx context.Context, name string) error {
	if p.SpawnLookup {
		return p.spawnLookup(ctx, name)
	}

	// exec.LookPath has no context; race it against ctx so a slow network
	// PATH entry cannot block discovery past the probe timeout.
	done := make(chan error, 1)
	go func() {
		_, err := exec.LookPath(name)
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("look up %s: %w", name, ctx.Err())
	}
}

func (p *HostProber) spawnLookup(ctx context.Context, name string) error {
	goos := p.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	bin, args := platform.HostCommand(p.Sandbox, platform.LookupCommand(goos), name)
	cmd := exec.CommandContext(ctx, bin, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", bin, name, err)
	}
	return nil
}

// Exists implements Prober.
func (p *HostProber) Exists(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
