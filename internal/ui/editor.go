package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mesonconfig/internal/kconfig"
)

// editModal edits an int or string option.
type editModal struct {
	name   string
	prompt string
	typ    kconfig.Type
	input  textinput.Model
}

func newEditModal(opt *kconfig.Option) editModal {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = editModalWidth - 8
	switch opt.Type {
	case kconfig.TypeInt:
		ti.Placeholder = "decimal number"
	default:
		ti.Placeholder = "text"
	}
	if opt.Value.IsSet() {
		ti.SetValue(opt.Value.String())
	}
	ti.CursorEnd()
	ti.Focus()

	return editModal{
		name:   opt.Name,
		prompt: opt.Prompt,
		typ:    opt.Type,
		input:  ti,
	}
}

func (e editModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			return e, nil, true
		case key.Matches(msg, keys.Confirm):
			value := e.input.Value()
			if e.typ == kconfig.TypeInt {
				value = strings.TrimSpace(value)
			}
			return e, emit(editResultMsg{name: e.name, value: value}), true
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd, false
}

func (e editModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(e.prompt))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", editModalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Enter a " + string(e.typ) + " value for " + e.name + "."))
	b.WriteString("\n")
	if e.typ == kconfig.TypeString {
		b.WriteString(styles.MutedText.Render("Surrounding quotes are optional."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(e.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Enter: Apply  •  Esc: Cancel"))

	return placeModal(theme, width, height, editModalWidth, b.String())
}
