// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package launcher

import (
	"os/exec"

	"termroute/internal/environment"
)

func prepareCommand(*exec.Cmd, environment.Environment, string) {}
