// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"

	"termroute/internal/environment"
)

var (
	// ErrEmptyCommand is returned when there is no command text to launch.
	ErrEmptyCommand = errors.New("empty command")
	// ErrLaunchFailed is the sentinel error wrapped by LaunchError.
	ErrLaunchFailed = errors.New("failed to launch environment")
)

type (
	// Streams are the standard streams handed to a launched environment.
	// Nil writers discard output.
	Streams struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// LaunchError is returned when an environment's process could not be started.
	// It matches both ErrLaunchFailed and the underlying cause with errors.Is.
	LaunchError struct {
		Identity environment.Identity
		Handle   environment.Handle
		Err      error
	}

	// Launcher runs commands inside environments.
	Launcher struct {
		logger *log.Logger
	}

	// Option configures a Launcher.
	Option func(*Launcher)

	// session is a started interactive shell that accepts typed input.
	session struct {
		input io.Writer
		wait  func() error
	}
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s (%s): %v", e.Identity, e.Handle, e.Err)
}

// Unwrap returns ErrLaunchFailed and the underlying cause.
func (e *LaunchError) Unwrap() []error { return []error{ErrLaunchFailed, e.Err} }

// WithLogger sets the logger used for launch diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Launcher.
func New(opts ...Option) *Launcher {
	l := &Launcher{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Invocation returns the argv that runs command non-interactively in env.
// The first element is the environment's handle.
func Invocation(env environment.Environment, command string) []string {
	argv := []string{string(env.Handle)}
	switch env.Category {
	case environment.CategoryPowerShell:
		argv = append(argv, "-NoLogo", "-Command")
	case environment.CategoryCmd:
		argv = append(argv, "/C")
	case environment.CategoryGitBash:
		argv = append(argv, "-l", "-c")
	case environment.CategoryWSL:
		argv = append(argv, "-e", "sh", "-c")
	default:
		argv = append(argv, env.Args...)
	}
	return append(argv, command)
}

// InteractiveInvocation returns the argv that starts env as an interactive shell.
func InteractiveInvocation(env environment.Environment) []string {
	argv := []string{string(env.Handle)}
	switch env.Category {
	case environment.CategoryPowerShell:
		argv = append(argv, "-NoLogo")
	case environment.CategoryGitBash:
		argv = append(argv, "-l")
	case environment.CategoryCmd, environment.CategoryWSL:
	default:
		argv = append(argv, env.Args...)
	}
	return argv
}

// DryRun renders the command line Run would execute, quoted for a POSIX shell.
func DryRun(env environment.Environment, command string) string {
	argv := Invocation(env, command)
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(arg)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " ")
}

// ClearCommand returns the screen-clearing command of a category.
func ClearCommand(category environment.Category) string {
	if category == environment.CategoryCmd {
		return "cls"
	}
	return "clear"
}

// Run executes command in env and waits for it to finish. A non-zero exit
// status is reported through the ExitCode with a nil error; errors are
// reserved for commands that could not be started.
func (l *Launcher) Run(ctx context.Context, env environment.Environment, command string, streams Streams) (ExitCode, error) {
	if err := validate(env); err != nil {
		return ExitFailure, err
	}
	if strings.TrimSpace(command) == "" {
		return ExitFailure, ErrEmptyCommand
	}

	argv := Invocation(env, command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	prepareCommand(cmd, env, command)
	cmd.Stdin = streams.Stdin
	cmd.Stdout = writerOrDiscard(streams.Stdout)
	cmd.Stderr = writerOrDiscard(streams.Stderr)

	l.logger.Debug("launching", "environment", env.Identity, "argv", argv)
	if err := cmd.Run(); err != nil {
		if code, ok := exitCodeOf(err); ok {
			l.logger.Debug("command exited", "environment", env.Identity, "code", code)
			return code, nil
		}
		return ExitFailure, &LaunchError{Identity: env.Identity, Handle: env.Handle, Err: err}
	}
	return 0, nil
}

// RunInteractive opens env as an interactive shell and types command into it.
func (l *Launcher) RunInteractive(ctx context.Context, env environment.Environment, command string, streams Streams) (ExitCode, error) {
	return l.RunSequence(ctx, env, []string{command}, streams)
}

// RunSequence opens env as an interactive shell and types each command on
// its own line, then "exit". Blank commands are skipped.
func (l *Launcher) RunSequence(ctx context.Context, env environment.Environment, commands []string, streams Streams) (ExitCode, error) {
	if err := validate(env); err != nil {
		return ExitFailure, err
	}
	lines := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		if strings.TrimSpace(c) != "" {
			lines = append(lines, c)
		}
	}
	if len(lines) == 0 {
		return ExitFailure, ErrEmptyCommand
	}
	lines = append(lines, "exit")

	argv := InteractiveInvocation(env)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	l.logger.Debug("opening session", "environment", env.Identity, "argv", argv, "commands", len(lines)-1)
	sess, err := startSession(cmd, streams)
	if err != nil {
		return ExitFailure, &LaunchError{Identity: env.Identity, Handle: env.Handle, Err: err}
	}

	for _, line := range lines {
		if _, err := io.WriteString(sess.input, line+"\n"); err != nil {
			// The shell already went away; its exit status tells the rest.
			l.logger.Debug("session input closed", "environment", env.Identity, "error", err)
			break
		}
	}

	if err := sess.wait(); err != nil {
		if code, ok := exitCodeOf(err); ok {
			return code, nil
		}
		return ExitFailure, &LaunchError{Identity: env.Identity, Handle: env.Handle, Err: err}
	}
	return 0, nil
}

func validate(env environment.Environment) error {
	if valid, errs := env.IsValid(); !valid {
		return errs[0]
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
