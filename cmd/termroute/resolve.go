// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"termroute/internal/config"
	"termroute/internal/environment"
	"termroute/internal/issue"
	"termroute/internal/resolve"
)

type (
	// resolution is a resolve.Result plus what the CLI shows around it.
	resolution struct {
		resolve.Result
		// warning is set for commands that need a specific environment
		// which is not usable.
		warning     string
		recommended []environment.Environment
	}

	resolveOutput struct {
		Command string `json:"command"`
		resolve.Result
		Warning     string                 `json:"warning,omitempty"`
		Recommended []environment.Identity `json:"recommended,omitempty"`
	}
)

func newResolveCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <command...>",
		Short: "Show which environment a command line would run in",
		Long: `Show which environment a command line would run in, the decision step
that chose it and why.

Everything after the first argument is part of the command line, so flags
meant for the command itself do not need quoting:

  termroute resolve npm install --save-dev`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, strings.Join(args, " "), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolution as JSON")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newExplainCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <command...>",
		Short: "Explain the environment choice for a command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			res, err := resolveWithConfig(cmd, app, cfg, strings.Join(args, " "))
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render(res.Class.String()), res.Justification)
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// resolveWithConfig discovers usable environments and resolves command.
func resolveWithConfig(cmd *cobra.Command, app *App, cfg *config.Config, command string) (resolution, error) {
	usable := app.usableEnvironments(cmd.Context(), cfg)
	r := app.resolver(cmd.Context(), cfg)
	result, err := r.Resolve(command, usable)
	if err != nil {
		return resolution{Result: result}, noUsableEnvironmentError(err)
	}
	app.logger.Debug("resolved", "command", command, "class", result.Class, "environment", result.Chosen.Identity, "source", result.Source)

	res := resolution{Result: result, recommended: environment.Recommend(usable)}
	if resolve.RequiresSpecificEnvironment(command) && result.Source != resolve.SourceOverrideIdentity {
		if target, _ := r.Target(command); target != result.Chosen.Category {
			res.warning = fmt.Sprintf("%s commands need a %s environment; none is usable, falling back to %s",
				result.Class, target, result.Chosen.Identity)
		}
	}
	return res, nil
}

func runResolve(cmd *cobra.Command, app *App, command string, asJSON bool) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}
	res, err := resolveWithConfig(cmd, app, cfg, command)
	if err != nil {
		return app.fail(cmd, err)
	}

	if asJSON {
		out := resolveOutput{Command: command, Result: res.Result, Warning: res.warning}
		if cfg.ShowRecommendations {
			out.Recommended = identities(res.recommended)
		}
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if res.warning != "" {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+res.warning)
		app.renderIssue(issue.RequiresSpecificEnvironmentId)
	}

	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Command:    "), command)
	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Class:      "), res.Class)
	fmt.Fprintf(app.stdout, "%s %s (%s)\n", SubtitleStyle.Render("Environment:"), CmdStyle.Render(res.Chosen.Identity.String()), res.Chosen.Category)
	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Source:     "), res.Source)
	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Reason:     "), res.Justification)
	if cfg.ShowRecommendations {
		printRecommended(app, res.recommended)
	}
	return nil
}

func printRecommended(app *App, recommended []environment.Environment) {
	if len(recommended) == 0 {
		return
	}
	names := make([]string, 0, len(recommended))
	for _, env := range recommended {
		names = append(names, CmdStyle.Render(env.Identity.String()))
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Recommended:"), strings.Join(names, ", "))
}

func noUsableEnvironmentError(err error) error {
	if !errors.Is(err, resolve.ErrNoUsableEnvironment) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("resolve environment").
		WithIssue(issue.NoUsableEnvironmentId).
		WithSuggestion("Run 'termroute detect' to see which environments were probed").
		WithSuggestion("Register a shell with 'termroute config add-custom <name> <path>'").
		Wrap(err).
		BuildError()
}
