// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"slices"
	"testing"
)

func TestTrimExecutableSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"node.exe", "node"},
		{"build.bat", "build"},
		{"setup.cmd", "setup"},
		{"deploy.sh", "deploy"},
		{"profile.ps1", "profile"},
		{"node", "node"},
		{"archive.tar.gz", "archive.tar.gz"},
		{".exe", ""},
		{"NODE.EXE", "NODE.EXE"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := TrimExecutableSuffix(tt.in); got != tt.want {
				t.Errorf("TrimExecutableSuffix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExecutableSuffixes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	got := ExecutableSuffixes()
	got[0] = ".mutated"
	if ExecutableSuffixes()[0] != ".exe" {
		t.Error("ExecutableSuffixes() exposed the package slice")
	}
}

func TestLookupCommand(t *testing.T) {
	t.Parallel()

	if got := LookupCommand(Windows); got != "where" {
		t.Errorf("LookupCommand(windows) = %q, want where", got)
	}
	if got := LookupCommand(Linux); got != "which" {
		t.Errorf("LookupCommand(linux) = %q, want which", got)
	}
}

func TestBaseNameAndDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		handle, base, display string
	}{
		{`C:\Program Files\Git\bin\bash.exe`, "bash.exe", "bash"},
		{"/usr/bin/pwsh", "pwsh", "pwsh"},
		{"wsl.exe", "wsl.exe", "wsl"},
		{"/opt/nu/nu", "nu", "nu"},
	}

	for _, tt := range tests {
		if got := BaseName(tt.handle); got != tt.base {
			t.Errorf("BaseName(%q) = %q, want %q", tt.handle, got, tt.base)
		}
		if got := DisplayName(tt.handle); got != tt.display {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.handle, got, tt.display)
		}
	}
}

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	noFile := func(string) error { return errors.New("missing") }
	hasFile := func(string) error { return nil }
	noEnv := func(string) string { return "" }
	snapEnv := func(key string) string {
		if key == "SNAP_NAME" {
			return "termroute"
		}
		return ""
	}

	if got := detectSandboxFrom(noEnv, noFile); got != SandboxNone {
		t.Errorf("no indicators: got %q", got)
	}
	if got := detectSandboxFrom(snapEnv, noFile); got != SandboxSnap {
		t.Errorf("SNAP_NAME set: got %q", got)
	}
	if got := detectSandboxFrom(snapEnv, hasFile); got != SandboxFlatpak {
		t.Errorf("flatpak should take precedence: got %q", got)
	}
}

func TestHostCommand(t *testing.T) {
	t.Parallel()

	name, args := HostCommand(SandboxNone, "which", "bash")
	if name != "which" || !slices.Equal(args, []string{"bash"}) {
		t.Errorf("SandboxNone: got %q %v", name, args)
	}

	name, args = HostCommand(SandboxFlatpak, "which", "bash")
	if name != "flatpak-spawn" || !slices.Equal(args, []string{"--host", "which", "bash"}) {
		t.Errorf("SandboxFlatpak: got %q %v", name, args)
	}

	name, args = HostCommand(SandboxSnap, "which", "bash")
	if name != "snap" || !slices.Equal(args, []string{"run", "--shell", "which", "bash"}) {
		t.Errorf("SandboxSnap: got %q %v", name, args)
	}
}
