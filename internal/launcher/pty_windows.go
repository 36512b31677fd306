// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launcher

import (
	"os/exec"
)

// startSession starts cmd with a stdin pipe; Windows has no PTY support here.
func startSession(cmd *exec.Cmd, streams Streams) (*session, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = writerOrDiscard(streams.Stdout)
	cmd.Stderr = writerOrDiscard(streams.Stderr)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &session{
		input: stdin,
		wait: func() error {
			_ = stdin.Close()
			return cmd.Wait()
		},
	}, nil
}
