package ui

import (
	"fmt"
	"strings"

	"github.com/five82/mesonconfig/internal/kconfig"
)

// menuFrame is one level of the navigation stack.
type menuFrame struct {
	title   string
	entries []kconfig.Entry
	depends string // context the entries are filtered with
	cursor  int
	offset  int // first row on screen
}

func rootFrame(cfg *kconfig.Config) menuFrame {
	title := cfg.MainMenu()
	if title == "" {
		title = "Main menu"
	}
	return menuFrame{title: title, entries: cfg.Entries()}
}

// childFrame returns the frame for entering e, or false when e has no
// children to show.
func childFrame(e kconfig.Entry, depends string) (menuFrame, bool) {
	switch e := e.(type) {
	case *kconfig.Menu:
		return menuFrame{
			title:   e.Title,
			entries: e.Entries,
			depends: kconfig.JoinDepends(depends, e.DependsOn),
		}, true
	case *kconfig.Choice:
		// A choice does not gate its members.
		return menuFrame{
			title:   choiceLabel(e),
			entries: e.Entries,
			depends: depends,
		}, true
	}
	return menuFrame{}, false
}

func choiceLabel(c *kconfig.Choice) string {
	if c.Prompt != "" {
		return c.Prompt
	}
	return "Choice"
}

// rowText renders the plain text of a menu row.
func rowText(e kconfig.Entry, showNames bool) string {
	switch e := e.(type) {
	case *kconfig.Option:
		text := padRight(valueMarker(e), valueColumn) + e.Prompt
		if showNames {
			text += " (" + e.Name + ")"
		}
		return text
	case *kconfig.Menu:
		return padRight("", valueColumn) + e.Title + "  --->"
	case *kconfig.Choice:
		return padRight("", valueColumn) + choiceLabel(e) + " (choice)  --->"
	case *kconfig.Comment:
		return padRight("", valueColumn) + "*** " + e.Text + " ***"
	}
	return ""
}

// valueMarker is the leading value column of an option row.
func valueMarker(o *kconfig.Option) string {
	switch o.Type {
	case kconfig.TypeBool:
		if o.Value.Bool {
			return "[*]"
		}
		return "[ ]"
	default:
		return "(" + truncate(o.Value.String(), valueColumn-3) + ")"
	}
}

// breadcrumb joins the titles of the stack.
func breadcrumb(stack []menuFrame) string {
	parts := make([]string, len(stack))
	for i, f := range stack {
		parts[i] = f.title
	}
	return strings.Join(parts, " > ")
}

// scrollTo adjusts offset so the cursor stays within a window of rows.
func (f *menuFrame) scrollTo(rows, count int) {
	if rows < 1 {
		rows = 1
	}
	f.cursor = clamp(f.cursor, 0, count-1)
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+rows {
		f.offset = f.cursor - rows + 1
	}
	f.offset = clamp(f.offset, 0, count-rows)
}

func entryLabel(e kconfig.Entry) string {
	switch e := e.(type) {
	case *kconfig.Option:
		return e.Name
	case *kconfig.Menu:
		return fmt.Sprintf("menu %q", e.Title)
	case *kconfig.Choice:
		return fmt.Sprintf("choice %q", choiceLabel(e))
	case *kconfig.Comment:
		return fmt.Sprintf("comment %q", e.Text)
	}
	return ""
}
