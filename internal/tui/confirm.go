// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const keyCtrlC = "ctrl+c"

type (
	// ConfirmOptions configures the Confirm component.
	ConfirmOptions struct {
		// Title is the question to display.
		Title string
		// Affirmative is the text for the affirmative option (default: "Yes").
		Affirmative string
		// Negative is the text for the negative option (default: "No").
		Negative string
		// Default is the answer selected initially and taken on an empty line.
		Default bool
		// Config holds common TUI configuration.
		Config Config
	}

	// confirmModel is the bubbletea model of a yes/no prompt.
	confirmModel struct {
		title       string
		affirmative string
		negative    string
		selection   bool
		done        bool
		cancelled   bool
		width       int
	}

	// ConfirmBuilder provides a fluent API for building Confirm prompts.
	ConfirmBuilder struct {
		opts ConfirmOptions
	}
)

var (
	confirmTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	confirmActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Bold(true).Padding(0, 1)
	confirmInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	confirmHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func newConfirmModel(opts ConfirmOptions) *confirmModel {
	affirmative, negative := opts.Affirmative, opts.Negative
	if affirmative == "" {
		affirmative = "Yes"
	}
	if negative == "" {
		negative = "No"
	}
	return &confirmModel{
		title:       opts.Title,
		affirmative: affirmative,
		negative:    negative,
		selection:   opts.Default,
	}
}

// Init implements tea.Model.
func (m *confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case keyCtrlC, "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "y", "Y":
			m.selection = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.selection = false
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.selection = true
		case "right", "l":
			m.selection = false
		case "up", "down", "tab", "shift+tab":
			m.selection = !m.selection
		case "enter", " ":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// View implements tea.Model.
func (m *confirmModel) View() string {
	if m.done {
		return ""
	}

	yesView := confirmInactiveStyle.Render(m.affirmative)
	noView := confirmInactiveStyle.Render(m.negative)
	if m.selection {
		yesView = confirmActiveStyle.Render(m.affirmative)
	} else {
		noView = confirmActiveStyle.Render(m.negative)
	}

	lines := make([]string, 0, 3)
	if m.title != "" {
		lines = append(lines, confirmTitleStyle.Render(m.title))
	}
	lines = append(lines,
		yesView+"  "+noView,
		confirmHelpStyle.Render("enter submit • y yes • n no • esc cancel"),
	)

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view + "\n"
}

// result returns the chosen answer, or ErrCancelled.
func (m *confirmModel) result() (bool, error) {
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.selection, nil
}

// Confirm asks a yes/no question. It returns ErrCancelled when the user
// dismisses the prompt.
func Confirm(ctx context.Context, opts ConfirmOptions) (bool, error) {
	if shouldUseAccessible(opts.Config) {
		return confirmLine(opts)
	}

	p := tea.NewProgram(newConfirmModel(opts),
		tea.WithContext(ctx),
		tea.WithInput(opts.Config.input()),
		tea.WithOutput(opts.Config.output()),
	)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	m, ok := final.(*confirmModel)
	if !ok {
		return false, errors.New("confirm prompt: unexpected model")
	}
	return m.result()
}

// confirmLine is the accessible prompt: one question line, one answer line.
func confirmLine(opts ConfirmOptions) (bool, error) {
	hint := "[y/N]"
	if opts.Default {
		hint = "[Y/n]"
	}
	fmt.Fprintf(opts.Config.output(), "%s %s ", opts.Title, hint)

	answer, err := bufio.NewReader(opts.Config.input()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	return parseAnswer(answer, opts.Default), nil
}

// parseAnswer interprets a typed answer; anything unrecognized is a no.
func parseAnswer(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// NewConfirm creates a new ConfirmBuilder with default options.
func NewConfirm() *ConfirmBuilder {
	return &ConfirmBuilder{
		opts: ConfirmOptions{
			Affirmative: "Yes",
			Negative:    "No",
			Config:      DefaultConfig(),
		},
	}
}

// Title sets the question of the prompt.
func (b *ConfirmBuilder) Title(title string) *ConfirmBuilder {
	b.opts.Title = title
	return b
}

// Default sets the initially selected answer.
func (b *ConfirmBuilder) Default(value bool) *ConfirmBuilder {
	b.opts.Default = value
	return b
}

// Input sets where answers are read from.
func (b *ConfirmBuilder) Input(r io.Reader) *ConfirmBuilder {
	b.opts.Config.Input = r
	return b
}

// Output sets where the prompt is drawn.
func (b *ConfirmBuilder) Output(w io.Writer) *ConfirmBuilder {
	b.opts.Config.Output = w
	return b
}

// Run executes the confirm prompt and returns the result.
func (b *ConfirmBuilder) Run(ctx context.Context) (bool, error) {
	return Confirm(ctx, b.opts)
}
