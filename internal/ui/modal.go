package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// placeModal centers a bordered dialog over the screen.
func placeModal(theme Theme, width, height, modalWidth int, content string) string {
	if modalWidth > width-2 && width > 4 {
		modalWidth = width - 2
	}
	box := theme.Styles().Dialog.Width(modalWidth).Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// Results reported by modals once they close.

type editResultMsg struct {
	name  string
	value string
}

type exitChoiceMsg struct {
	save bool
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
