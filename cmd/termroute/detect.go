// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"termroute/internal/environment"
)

type detectOutput struct {
	Available   []environment.Environment `json:"available"`
	Unavailable []environment.Environment `json:"unavailable"`
	Recommended []environment.Identity    `json:"recommended"`
}

func newDetectCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "List the terminal environments installed on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, app, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the detection result as JSON")

	return cmd
}

func runDetect(cmd *cobra.Command, app *App, asJSON bool) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}

	result := app.registry(cfg).Detect(cmd.Context())

	if asJSON {
		out := detectOutput{
			Available:   result.Available,
			Unavailable: result.Unavailable,
			Recommended: identities(result.Recommended),
		}
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Terminal Environments"))
	fmt.Fprintln(app.stdout)

	rows := make([][]string, 0, len(result.Available)+len(result.Unavailable))
	for _, env := range result.Available {
		rows = append(rows, []string{successIcon, env.Identity.String(), env.Category.String(), env.Handle.String()})
	}
	for _, env := range result.Unavailable {
		rows = append(rows, []string{errorIcon, env.Identity.String(), env.Category.String(), env.Handle.String()})
	}
	fmt.Fprintln(app.stdout, environmentTable(rows))
	fmt.Fprintln(app.stdout)

	if len(result.Available) == 0 {
		fmt.Fprintf(app.stdout, "%s No usable environment found\n", WarningStyle.Render("!"))
		return nil
	}
	if cfg.ShowRecommendations {
		printRecommended(app, result.Recommended)
	}
	return nil
}

func environmentTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0 && row < len(rows) && rows[row][0] == successIcon:
				return tableCellStyle.Foreground(ColorSuccess)
			case col == 0:
				return tableCellStyle.Foreground(ColorError)
			default:
				return tableCellStyle
			}
		}).
		Headers("", "ENVIRONMENT", "CATEGORY", "HANDLE").
		Rows(rows...).
		String()
}

func identities(envs []environment.Environment) []environment.Identity {
	out := make([]environment.Identity, 0, len(envs))
	for _, env := range envs {
		out = append(out, env.Identity)
	}
	return out
}
