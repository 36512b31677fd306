// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package launcher

import (
	"io"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

// drainTimeout bounds how long terminal output is copied after the shell
// exits. Background children holding the terminal open would otherwise
// block the session forever.
const drainTimeout = 2 * time.Second

// startSession starts cmd on a pseudo-terminal and mirrors the terminal
// output to streams.Stdout.
func startSession(cmd *exec.Cmd, streams Streams) (*session, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}

	out := writerOrDiscard(streams.Stdout)
	copied := make(chan struct{})
	go func() {
		defer close(copied)
		// Reads fail with EIO once the shell exits and the terminal closes.
		_, _ = io.Copy(out, ptmx)
	}()

	return &session{
		input: ptmx,
		wait: func() error {
			err := cmd.Wait()
			select {
			case <-copied:
			case <-time.After(drainTimeout):
			}
			_ = ptmx.Close()
			return err
		},
	}, nil
}
