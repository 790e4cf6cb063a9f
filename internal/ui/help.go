package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mesonconfig/internal/kconfig"
)

// keyHelpModal lists every binding. Any key closes it.
type keyHelpModal struct{}

func (keyHelpModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	_, isKey := msg.(tea.KeyMsg)
	return keyHelpModal{}, nil, isKey
}

func (keyHelpModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	keys := DefaultKeyMap()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning)).
		Width(12)

	groups := keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	return placeModal(theme, width, height, helpModalWidth, b.String())
}

// optionHelpModal shows details for the entry under the cursor in a
// scrollable viewport.
type optionHelpModal struct {
	title    string
	viewport viewport.Model
}

func newOptionHelpModal(title, body string, height int) optionHelpModal {
	h := clamp(strings.Count(body, "\n")+1, 1, clamp(height-10, 3, optionHelpHeight))
	vp := viewport.New(optionHelpWidth-6, h)
	vp.SetContent(body)
	return optionHelpModal{title: title, viewport: vp}
}

func (o optionHelpModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Cancel), key.Matches(km, keys.Confirm),
			key.Matches(km, keys.OptionHelp), km.String() == "q":
			return o, nil, true
		}
	}
	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(msg)
	return o, cmd, false
}

func (o optionHelpModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(o.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", optionHelpWidth-6)))
	b.WriteString("\n")
	b.WriteString(o.viewport.View())
	b.WriteString("\n")
	hint := "Esc: Close"
	if !o.viewport.AtTop() || !o.viewport.AtBottom() {
		hint = fmt.Sprintf("j/k: Scroll (%3.f%%)  •  Esc: Close", o.viewport.ScrollPercent()*100)
	}
	b.WriteString(styles.FaintText.Render(hint))

	return placeModal(theme, width, height, optionHelpWidth, b.String())
}

const noHelp = "There is no help available for this option."

// describeEntry builds the option help text for e. depends is the context e
// is listed under.
func describeEntry(cfg *kconfig.Config, e kconfig.Entry, depends string) (title, body string) {
	var b strings.Builder
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-12s %s\n", label+":", value)
		}
	}

	switch e := e.(type) {
	case *kconfig.Option:
		title = e.Prompt
		symbol := e.Name
		if e.Value.IsSet() {
			symbol += " [=" + e.Value.String() + "]"
		}
		field("Symbol", symbol)
		field("Type", string(e.Type))
		field("Prompt", e.Prompt)
		if e.HasDefault {
			field("Default", e.Default)
		}
		field("Depends on", e.DependsOn)
		if parents, ok := cfg.OptionParents(e.Name); ok {
			field("Menu context", parents)
		}
		field("Visible", yesNo(cfg.IsVisible(e)))
		field("Defined at", e.Pos.String())
		b.WriteString("\n")
		if e.Help != "" {
			b.WriteString(strings.TrimRight(e.Help, "\n"))
		} else {
			b.WriteString(noHelp)
		}

	case *kconfig.Menu:
		title = e.Title
		field("Menu", e.Title)
		field("Depends on", e.DependsOn)
		field("Children see", kconfig.JoinDepends(depends, e.DependsOn))
		field("Defined at", e.Pos.String())

	case *kconfig.Choice:
		title = choiceLabel(e)
		field("Choice", choiceLabel(e))
		field("Depends on", e.DependsOn)
		field("Members", fmt.Sprint(len(e.Entries)))
		field("Defined at", e.Pos.String())

	case *kconfig.Comment:
		title = e.Text
		field("Comment", e.Text)
		field("Defined at", e.Pos.String())
	}

	return title, strings.TrimRight(b.String(), "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
