// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"termroute/internal/issue"
	"termroute/internal/stats"
)

func newStatsCommand(app *App) *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show anonymized usage statistics",
		Long: `Show anonymized usage statistics.

Statistics are only collected when enable_statistics is true. Only the
first word of each command is stored, never its arguments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	statsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the statistics summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCollector(cmd, app)
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintln(app.stdout, TitleStyle.Render("Usage Statistics"))
			fmt.Fprintln(app.stdout)
			fmt.Fprint(app.stdout, c.Summary())
			return nil
		},
	})

	statsCmd.AddCommand(&cobra.Command{
		Use:   "insights",
		Short: "Show observations about your usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCollector(cmd, app)
			if err != nil {
				return app.fail(cmd, err)
			}
			insights := c.Insights()
			if len(insights) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No insights yet."))
				return nil
			}
			for _, insight := range insights {
				fmt.Fprintf(app.stdout, "• %s\n", insight)
			}
			return nil
		},
	})

	var exportPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export statistics and history as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCollector(cmd, app)
			if err != nil {
				return app.fail(cmd, err)
			}
			data, err := c.Export()
			if err != nil {
				return app.fail(cmd, err)
			}
			if exportPath == "" {
				_, err = app.stdout.Write(data)
				return err
			}
			if err := os.WriteFile(exportPath, data, 0o644); err != nil {
				return app.fail(cmd, issue.WrapWithContext(err, "write statistics export", exportPath))
			}
			fmt.Fprintf(app.stdout, "%s Statistics exported to %s\n", SuccessStyle.Render(successIcon), exportPath)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "write to a file instead of stdout")
	statsCmd.AddCommand(exportCmd)

	statsCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCollector(cmd, app)
			if err != nil {
				return app.fail(cmd, err)
			}
			if err := c.Clear(); err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(app.stdout, "%s Statistics cleared\n", SuccessStyle.Render(successIcon))
			return nil
		},
	})

	return statsCmd
}

// openCollector opens the statistics file and warns when collection is off.
func openCollector(cmd *cobra.Command, app *App) (*stats.Collector, error) {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}
	c, err := app.collector(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.CheckEnabled(); err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+err.Error())
		app.renderIssue(issue.StatisticsDisabledId)
	}
	return c, nil
}
