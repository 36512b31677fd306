// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launcher

import (
	"os/exec"
	"syscall"

	"termroute/internal/environment"
)

// prepareCommand hands cmd.exe its command line verbatim. cmd.exe does its
// own quote parsing, which the default argv escaping breaks.
func prepareCommand(cmd *exec.Cmd, env environment.Environment, command string) {
	if env.Category != environment.CategoryCmd {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: syscall.EscapeArg(string(env.Handle)) + ` /S /C "` + command + `"`,
	}
}
