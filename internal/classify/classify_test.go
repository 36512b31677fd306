// SPDX-License-Identifier: MPL-2.0

package classify

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		want    CommandClass
	}{
		{"elevated mixed case", "SUDO Git status", "git"},
		{"exe suffix", "node.exe", "node"},
		{"whitespace only", "  ", Unknown},
		{"empty", "", Unknown},
		{"plain with args", "npm install --save-dev typescript", "npm"},
		{"surrounding whitespace", "\t  docker ps -a \n", "docker"},
		{"doas prefix", "doas apt-get update", "apt-get"},
		{"lone sudo", "sudo", Unknown},
		{"sudo with spaces", "sudo    pacman -Syu", "pacman"},
		{"bat suffix", "build.bat --release", "build"},
		{"cmd suffix", "setup.CMD", "setup"},
		{"sh suffix", "./deploy.sh prod", "./deploy"},
		{"ps1 suffix", "Profile.ps1", "profile"},
		{"unix path", "/usr/local/bin/tool --flag", "/usr/local/bin/tool"},
		{"windows path", `C:\tools\thing.exe /q`, `c:\tools\thing`},
		{"powershell verb", "Get-Process -Name code", "get-process"},
		{"unknown token kept", "frobnicate now", "frobnicate"},
		{"only one suffix stripped", "weird.sh.exe", "weird.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.command); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestCommandClass_IsUnknown(t *testing.T) {
	t.Parallel()

	if !Classify("   ").IsUnknown() {
		t.Error("whitespace command should classify as unknown")
	}
	if Classify("git").IsUnknown() {
		t.Error("git should not be unknown")
	}
	if got := CommandClass("git").String(); got != "git" {
		t.Errorf("String() = %q, want git", got)
	}
}
