// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"termroute/internal/config"
	"termroute/internal/environment"
	"termroute/internal/issue"
	"termroute/internal/launcher"
	"termroute/internal/stats"
	"termroute/internal/tui"
)

type runOptions struct {
	envName     string
	interactive bool
	clear       bool
	dryRun      bool
	yes         bool
}

func newRunCommand(app *App) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags] <command...>",
		Short: "Run a command line in the resolved or a named environment",
		Long: `Run a command line in the environment termroute resolves for it, or in
the environment named with --env.

With --interactive the environment is opened as an interactive shell and the
command is typed into it, then the shell exits. --clear clears the screen of
that session first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, app, strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.envName, "env", "e", "", "run in the named environment instead of resolving one")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "type the command into an interactive shell session")
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "clear the interactive session's screen before the command")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the command line without running it")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runCommand(cmd *cobra.Command, app *App, command string, opts runOptions) error {
	ctx := cmd.Context()
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(cmd, err)
	}

	env, mode, err := pickEnvironment(cmd, app, cfg, command, opts.envName)
	if err != nil {
		return app.fail(cmd, err)
	}

	lines := []string{command}
	if opts.clear {
		lines = append([]string{launcher.ClearCommand(env.Category)}, lines...)
	}

	if opts.dryRun {
		if opts.interactive {
			fmt.Fprintf(app.stdout, "%s\n%s\n", strings.Join(launcher.InteractiveInvocation(env), " "), strings.Join(lines, "\n"))
			return nil
		}
		fmt.Fprintln(app.stdout, launcher.DryRun(env, command))
		return nil
	}

	if mode == stats.ModeAuto && cfg.AutoRunConfirmation && !opts.yes {
		ok, err := tui.NewConfirm().
			Title(fmt.Sprintf("Run %q in %s?", command, env.Identity)).
			Input(app.stdin).
			Output(app.stderr).
			Run(ctx)
		if err != nil && !errors.Is(err, tui.ErrCancelled) {
			return app.fail(cmd, err)
		}
		if !ok {
			fmt.Fprintln(app.stderr, SubtitleStyle.Render("Cancelled."))
			return nil
		}
	}

	streams := launcher.Streams{Stdin: app.stdin, Stdout: app.stdout, Stderr: app.stderr}
	var code launcher.ExitCode
	if opts.interactive {
		code, err = app.Launcher.RunSequence(ctx, env, lines, streams)
	} else {
		code, err = app.Launcher.Run(ctx, env, command, streams)
	}
	if err != nil {
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation("run command").
			WithResource(env.Identity.String()).
			WithIssue(issue.LaunchFailedId).
			WithSuggestion("Run 'termroute detect' to check that the environment is still installed").
			Wrap(err).
			BuildError())
	}

	recordLaunch(app, cfg, command, env, mode)

	if !code.IsSuccess() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: code}
	}
	return nil
}

// pickEnvironment returns the named environment (manual mode) or the
// resolved one (auto mode).
func pickEnvironment(cmd *cobra.Command, app *App, cfg *config.Config, command, envName string) (environment.Environment, stats.Mode, error) {
	if envName == "" {
		res, err := resolveWithConfig(cmd, app, cfg, command)
		if err != nil {
			return environment.Environment{}, stats.ModeAuto, err
		}
		if res.warning != "" {
			fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+res.warning)
		}
		app.logger.Info("auto-selected environment", "environment", res.Chosen.Identity, "reason", res.Justification)
		return res.Chosen, stats.ModeAuto, nil
	}

	usable := app.usableEnvironments(cmd.Context(), cfg)
	if env, ok := environment.FindByName(usable, envName); ok {
		return env, stats.ModeManual, nil
	}

	names := make([]string, 0, len(usable))
	for _, env := range usable {
		names = append(names, env.Identity.String())
	}
	suggestion := "No environment is usable; run 'termroute detect' for details"
	if len(names) > 0 {
		suggestion = "Usable environments: " + strings.Join(names, ", ")
	}
	return environment.Environment{}, stats.ModeManual, issue.NewErrorContext().
		WithOperation("select environment").
		WithResource(envName).
		WithIssue(issue.EnvironmentNotFoundId).
		WithSuggestion(suggestion).
		Wrap(fmt.Errorf("environment %q is not installed or not usable", envName)).
		BuildError()
}

func recordLaunch(app *App, cfg *config.Config, command string, env environment.Environment, mode stats.Mode) {
	if !cfg.EnableStatistics {
		return
	}
	collector, err := app.collector(cfg)
	if err != nil {
		app.logger.Warn("failed to open statistics", "error", err)
		return
	}
	if err := collector.Record(command, env.Identity.String(), mode); err != nil {
		app.logger.Warn("failed to record statistics", "error", err)
	}
}
