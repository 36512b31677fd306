// SPDX-License-Identifier: MPL-2.0

package stats

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

const (
	summaryTopClasses = 10

	autoHighPercent     = 70
	autoLowPercent      = 30
	dominantEnvPercent  = 60
	diverseClassCount   = 10
	ecosystemShareRatio = 0.3
)

var nodeClasses = []string{"npm", "node", "yarn"}

type share struct {
	name  string
	count int
}

// Percentage returns value as a rounded percentage of total, 0 when total is 0.
func Percentage(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}

// sortedShares orders a counter map by count descending, then name.
func sortedShares(counts map[string]int) []share {
	out := make([]share, 0, len(counts))
	for name, count := range counts {
		out = append(out, share{name: name, count: count})
	}
	slices.SortFunc(out, func(a, b share) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return out
}

// Summary renders the totals as plain text.
func (c *Collector) Summary() string {
	t := c.Totals()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total commands: %d\n", t.Commands)
	fmt.Fprintf(&sb, "Last updated: %s\n\n", t.LastUpdated.Format(time.RFC3339))

	sb.WriteString("Execution mode:\n")
	fmt.Fprintf(&sb, "  auto: %d (%d%%)\n", t.Auto, Percentage(t.Auto, t.Commands))
	fmt.Fprintf(&sb, "  manual: %d (%d%%)\n\n", t.Manual, Percentage(t.Manual, t.Commands))

	sb.WriteString("Environments:\n")
	for _, s := range sortedShares(t.ByEnvironment) {
		fmt.Fprintf(&sb, "  %s: %d (%d%%)\n", s.name, s.count, Percentage(s.count, t.Commands))
	}
	sb.WriteString("\n")

	sb.WriteString("Top command classes:\n")
	classes := sortedShares(t.ByClass)
	if len(classes) > summaryTopClasses {
		classes = classes[:summaryTopClasses]
	}
	for _, s := range classes {
		fmt.Fprintf(&sb, "  %s: %d (%d%%)\n", s.name, s.count, Percentage(s.count, t.Commands))
	}
	return sb.String()
}

// Insights returns observations about usage patterns. Nothing is reported
// before the first recorded command.
func (c *Collector) Insights() []string {
	t := c.Totals()
	if t.Commands == 0 {
		return nil
	}

	var insights []string

	switch auto := Percentage(t.Auto, t.Commands); {
	case auto > autoHighPercent:
		insights = append(insights, fmt.Sprintf("%d%% of commands use automatic environment selection.", auto))
	case auto < autoLowPercent:
		insights = append(insights, "Automatic environment selection is rarely used; `termroute run` without --env picks one for you.")
	}

	if envs := sortedShares(t.ByEnvironment); len(envs) > 0 {
		if pct := Percentage(envs[0].count, t.Commands); pct > dominantEnvPercent {
			insights = append(insights, fmt.Sprintf("Most commands run in %s (%d%%).", envs[0].name, pct))
		}
	}

	if n := len(t.ByClass); n > diverseClassCount {
		insights = append(insights, fmt.Sprintf("%d different command classes are in use.", n))
	}

	threshold := float64(t.Commands) * ecosystemShareRatio
	if float64(t.ByClass["git"]) > threshold {
		insights = append(insights, "Git commands are frequent; they are routed to Git Bash by default.")
	}

	node := 0
	for _, class := range nodeClasses {
		node += t.ByClass[class]
	}
	if float64(node) > threshold {
		insights = append(insights, "Node.js commands are frequent; they are routed to PowerShell by default.")
	}

	return insights
}
