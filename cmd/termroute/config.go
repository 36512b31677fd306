// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"termroute/internal/config"
	"termroute/internal/issue"
)

// newConfigCommand creates the `termroute config` command tree.
// Subcommands that read configuration use the App's Provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage termroute configuration",
		Long: `Manage termroute configuration.

Configuration is stored in:
  - Linux: ~/.config/termroute/config.cue
  - macOS: ~/Library/Application Support/termroute/config.cue
  - Windows: %APPDATA%\termroute\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration and statistics file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set-default <environment>",
		Short: "Set the environment used when no rule or category matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, func(cfg *config.Config) (string, error) {
				if err := cfg.SetDefaultEnvironment(args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Default environment set to %s", CmdStyle.Render(cfg.DefaultEnvironment)), nil
			})
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set-rule <command> <environment>",
		Short: "Route a command to an environment by name or category",
		Long: `Route a command to an environment. Only the first word of <command>
counts, so "git" and "git push" set the same rule. <environment> is an
environment name such as "Git Bash", or a keyword such as powershell, cmd,
bash or wsl.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, func(cfg *config.Config) (string, error) {
				class, err := cfg.SetRule(args[0], args[1])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Rule set: %s → %s", CmdStyle.Render(class.String()), cfg.Rules[class.String()]), nil
			})
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "remove-rule <command>",
		Short: "Remove the rule for a command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, func(cfg *config.Config) (string, error) {
				if !cfg.RemoveRule(args[0]) {
					return "", fmt.Errorf("no rule for %q", args[0])
				}
				return fmt.Sprintf("Rule removed for %s", CmdStyle.Render(args[0])), nil
			})
		},
	})

	addCustom := &cobra.Command{
		Use:   "add-custom <name> <path> [args...]",
		Short: "Register a custom shell as an environment",
		Long: `Register a custom shell. The arguments after <path> are passed to the
shell before the command text, for example:

  termroute config add-custom Fish /usr/bin/fish -c`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, func(cfg *config.Config) (string, error) {
				ce := config.CustomEnvironment{Name: args[0], Path: args[1], Args: args[2:]}
				if err := cfg.AddCustomEnvironment(ce); err != nil {
					return "", err
				}
				return fmt.Sprintf("Custom environment %s added", CmdStyle.Render(ce.Identity())), nil
			})
		},
	}
	addCustom.Flags().SetInterspersed(false)
	cfgCmd.AddCommand(addCustom)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "remove-custom <name>",
		Short: "Remove a custom environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, func(cfg *config.Config) (string, error) {
				if !cfg.RemoveCustomEnvironment(args[0]) {
					return "", fmt.Errorf("no custom environment named %q", args[0])
				}
				return fmt.Sprintf("Custom environment %s removed", CmdStyle.Render(args[0])), nil
			})
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Overwrite the configuration file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.FilePath(app.loadOptions())
			if err != nil {
				return app.fail(cmd, err)
			}
			if err := config.SaveTo(path, config.DefaultConfig()); err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration reset at %s\n", SuccessStyle.Render(successIcon), path)
			return nil
		},
	})

	var exportPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportConfig(cmd, app, exportPath)
		},
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "write to a file instead of stdout")
	cfgCmd.AddCommand(exportCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the configuration with a TOML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importConfig(cmd, app, args[0])
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, pathErr := config.FilePath(app.loadOptions())
	if pathErr == nil && fileExists(path) {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("default_environment"), valueStyle.Render(cfg.DefaultEnvironment))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("exact_overrides"), valueStyle.Render(fmt.Sprintf("%v", cfg.ExactOverrides)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("auto_detect_on_startup"), valueStyle.Render(fmt.Sprintf("%v", cfg.AutoDetectOnStartup)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("enable_statistics"), valueStyle.Render(fmt.Sprintf("%v", cfg.EnableStatistics)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("show_recommendations"), valueStyle.Render(fmt.Sprintf("%v", cfg.ShowRecommendations)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("auto_run_confirmation"), valueStyle.Render(fmt.Sprintf("%v", cfg.AutoRunConfirmation)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("rules"))
	if len(cfg.Rules) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		classes := make([]string, 0, len(cfg.Rules))
		for class := range cfg.Rules {
			classes = append(classes, class)
		}
		slices.Sort(classes)
		for _, class := range classes {
			fmt.Fprintf(out, "  %s → %s\n", class, valueStyle.Render(cfg.Rules[class]))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("custom_environments"))
	if len(cfg.CustomEnvironments) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, ce := range cfg.CustomEnvironments {
			line := fmt.Sprintf("  - %s: %s", valueStyle.Render(ce.Identity()), ce.Path)
			if len(ce.Args) > 0 {
				line += " " + strings.Join(ce.Args, " ")
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("probe"))
	fmt.Fprintf(out, "  timeout: %s\n", valueStyle.Render(cfg.Probe.Timeout.String()))
	fmt.Fprintf(out, "  spawn_lookup: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Probe.SpawnLookup)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	path, err := config.FilePath(app.loadOptions())
	if err != nil {
		return app.fail(cmd, err)
	}
	statsPath, err := app.statsPath()
	if err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	fmt.Fprintf(app.stdout, "Statistics file: %s\n", statsPath)
	return nil
}

func initConfig(cmd *cobra.Command, app *App) error {
	path, err := config.FilePath(app.loadOptions())
	if err != nil {
		return app.fail(cmd, err)
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return app.fail(cmd, issue.WrapWithContext(err, "create configuration", path))
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render(successIcon), path)
	return nil
}

// updateConfig loads the config file, applies mutate and saves the result.
// mutate returns the confirmation message to print.
func updateConfig(cmd *cobra.Command, app *App, mutate func(cfg *config.Config) (string, error)) error {
	cfg, path, err := app.loadConfigStrict(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}

	msg, err := mutate(cfg)
	if err != nil {
		return app.fail(cmd, err)
	}
	if err := config.SaveTo(path, cfg); err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render(successIcon), msg)
	return nil
}

func exportConfig(cmd *cobra.Command, app *App, outputPath string) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}
	data, err := config.Export(cfg)
	if err != nil {
		return app.fail(cmd, err)
	}

	if outputPath == "" {
		_, err = app.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return app.fail(cmd, issue.WrapWithContext(err, "write configuration export", outputPath))
	}
	fmt.Fprintf(app.stdout, "%s Configuration exported to %s\n", SuccessStyle.Render(successIcon), outputPath)
	return nil
}

func importConfig(cmd *cobra.Command, app *App, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return app.fail(cmd, issue.WrapWithContext(err, "read configuration import", inputPath))
	}
	cfg, err := config.Import(data)
	if err != nil {
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation("import configuration").
			WithResource(inputPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Create a valid export with 'termroute config export'").
			Wrap(err).
			BuildError())
	}

	path, err := config.FilePath(app.loadOptions())
	if err != nil {
		return app.fail(cmd, err)
	}
	if err := config.SaveTo(path, cfg); err != nil {
		return app.fail(cmd, err)
	}
	fmt.Fprintf(app.stdout, "%s Configuration imported into %s\n", SuccessStyle.Render(successIcon), path)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
