package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const exitQuestion = "Do you wish to save your new configuration?"

// exitDialog asks whether to save before leaving.
type exitDialog struct {
	yes bool // which button has focus
}

func newExitDialog() exitDialog {
	return exitDialog{yes: true}
}

func (d exitDialog) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(km, keys.Cancel):
		return d, nil, true
	case key.Matches(km, keys.Left), key.Matches(km, keys.Right):
		d.yes = !d.yes
	case key.Matches(km, keys.Yes):
		return d, emit(exitChoiceMsg{save: true}), true
	case key.Matches(km, keys.No):
		return d, emit(exitChoiceMsg{save: false}), true
	case key.Matches(km, keys.Confirm):
		return d, emit(exitChoiceMsg{save: d.yes}), true
	}
	return d, nil, false
}

func (d exitDialog) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	button := func(label string, focused bool) string {
		style := lipgloss.NewStyle().Padding(0, 2)
		if focused {
			return styles.Selected.Inherit(style).Bold(true).Render(label)
		}
		return styles.MutedText.Inherit(style).Render(label)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(exitQuestion))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		button("< Yes >", d.yes),
		"  ",
		button("< No >", !d.yes),
	))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Esc: Continue editing"))

	return placeModal(theme, width, height, exitDialogWidth, b.String())
}
