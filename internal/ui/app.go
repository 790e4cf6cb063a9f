package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/mesonconfig/internal/kconfig"
	"github.com/five82/mesonconfig/internal/prefs"
	"github.com/five82/mesonconfig/internal/state"
)

// Options configures the UI.
type Options struct {
	Store               *state.Store
	Logger              *log.Logger
	ThemeName           string
	ShowNames           bool
	PrefsPath           string
	DisableMinSizeCheck bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store        *state.Store
	logger       *log.Logger
	keys         keyMap
	help         help.Model
	prefsPath    string
	minSizeCheck bool

	// UI state
	theme     Theme
	showNames bool
	width     int
	height    int
	ready     bool

	// Navigation stack; the root menu is always stack[0].
	stack []menuFrame

	// Active dialog, if any
	modal Modal

	snapshot state.Snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		store:        opts.Store,
		logger:       logger,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		prefsPath:    prefsPath,
		minSizeCheck: !opts.DisableMinSizeCheck,
		theme:        GetTheme(themeName),
		showNames:    opts.ShowNames,
		snapshot:     opts.Store.Snapshot(),
	}
	opts.Store.View(func(cfg *kconfig.Config) {
		m.stack = []menuFrame{rootFrame(cfg)}
	})
	m.applyHelpStyles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.syncCursor()
		return m, nil

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case editResultMsg:
		if err := m.store.Set(msg.name, msg.value); err != nil {
			m.logger.Debug("value rejected", "option", msg.name, "error", err)
		}
		m.refresh()
		return m, nil

	case exitChoiceMsg:
		if msg.save {
			if err := m.store.Save(); err != nil {
				m.logger.Error("save failed", "error", err)
				m.refresh()
				return m, nil
			}
		}
		return m, tea.Quit
	}

	// Cursor blinks and other internal messages belong to the open dialog.
	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.tooSmall() {
		return m.renderResizeNotice()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.tooSmall() {
		return m, nil
	}

	frame := m.frame()
	switch {
	case key.Matches(msg, m.keys.Up):
		frame.cursor--
	case key.Matches(msg, m.keys.Down):
		frame.cursor++
	case key.Matches(msg, m.keys.Top):
		frame.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		frame.cursor = len(m.visible()) - 1
	case key.Matches(msg, m.keys.PageUp):
		frame.cursor -= m.listHeight()
	case key.Matches(msg, m.keys.PageDown):
		frame.cursor += m.listHeight()

	case key.Matches(msg, m.keys.Back):
		return m.back()

	case key.Matches(msg, m.keys.Select):
		return m.activate()
	case key.Matches(msg, m.keys.Toggle):
		m.setBool(nil)
	case key.Matches(msg, m.keys.Yes):
		on := true
		m.setBool(&on)
	case key.Matches(msg, m.keys.No):
		off := false
		m.setBool(&off)

	case key.Matches(msg, m.keys.OptionHelp):
		m.openOptionHelp()
	case key.Matches(msg, m.keys.KeyHelp):
		m.modal = keyHelpModal{}

	case key.Matches(msg, m.keys.Save):
		if err := m.store.Save(); err != nil {
			m.logger.Error("save failed", "error", err)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Reload):
		if err := m.store.Reload(); err != nil {
			m.logger.Warn("reload failed", "error", err)
		}
		m.refresh()

	case key.Matches(msg, m.keys.ToggleName):
		m.showNames = !m.showNames
		m.savePrefs()
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyHelpStyles()
		m.savePrefs()
	}

	m.syncCursor()
	return m, nil
}

// activate enters menus and choices, toggles bools and edits other values.
func (m Model) activate() (tea.Model, tea.Cmd) {
	e := m.current()
	if e == nil {
		return m, nil
	}

	if child, ok := childFrame(e, m.frame().depends); ok {
		m.logger.Debug("entering", "entry", entryLabel(e))
		m.stack = append(m.stack, child)
		m.syncCursor()
		return m, nil
	}

	opt, ok := e.(*kconfig.Option)
	if !ok {
		return m, nil
	}
	if opt.Type == kconfig.TypeBool {
		m.setBool(nil)
		return m, nil
	}

	var editor editModal
	m.store.View(func(*kconfig.Config) { editor = newEditModal(opt) })
	m.modal = editor
	return m, textinput.Blink
}

// back leaves the current menu. At the root it exits, asking first when
// there are unsaved changes.
func (m Model) back() (tea.Model, tea.Cmd) {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
		m.syncCursor()
		return m, nil
	}
	if m.snapshot.Dirty {
		m.modal = newExitDialog()
		return m, nil
	}
	return m, tea.Quit
}

// setBool sets the bool option under the cursor; nil toggles it.
func (m *Model) setBool(v *bool) {
	opt, ok := m.current().(*kconfig.Option)
	if !ok || opt.Type != kconfig.TypeBool {
		return
	}
	var err error
	switch {
	case v == nil:
		err = m.store.Toggle(opt.Name)
	case *v:
		err = m.store.Set(opt.Name, "y")
	default:
		err = m.store.Set(opt.Name, "n")
	}
	if err != nil {
		m.logger.Debug("value rejected", "option", opt.Name, "error", err)
	}
	m.refresh()
}

func (m *Model) openOptionHelp() {
	e := m.current()
	if e == nil {
		return
	}
	var title, body string
	m.store.View(func(cfg *kconfig.Config) {
		title, body = describeEntry(cfg, e, m.frame().depends)
	})
	m.modal = newOptionHelpModal(title, body, m.height)
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, ShowNames: m.showNames}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("could not save preferences", "path", m.prefsPath, "error", err)
	}
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
}

// refresh re-reads the session summary after a store call and keeps the
// cursor on a visible row, since a value change can hide entries.
func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	m.syncCursor()
}

func (m *Model) frame() *menuFrame {
	return &m.stack[len(m.stack)-1]
}

// visible returns the current frame's visible entries.
func (m Model) visible() []kconfig.Entry {
	f := m.stack[len(m.stack)-1]
	var out []kconfig.Entry
	var err error
	m.store.View(func(cfg *kconfig.Config) {
		out, err = cfg.VisibleEntries(f.entries, f.depends)
	})
	if err != nil {
		m.logger.Error("visibility failed", "menu", f.title, "error", err)
		return nil
	}
	return out
}

// current returns the entry under the cursor, or nil in an empty menu.
func (m Model) current() kconfig.Entry {
	entries := m.visible()
	if len(entries) == 0 {
		return nil
	}
	return entries[clamp(m.stack[len(m.stack)-1].cursor, 0, len(entries)-1)]
}

func (m *Model) syncCursor() {
	m.frame().scrollTo(m.listHeight(), len(m.visible()))
}

func (m Model) listHeight() int {
	if h := m.height - chromeRows; h > 1 {
		return h
	}
	return 1
}

func (m Model) tooSmall() bool {
	return m.minSizeCheck && (m.width < MinWidth || m.height < MinHeight)
}

// renderMain renders the menu screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBreadcrumb())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderKeyHints())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("mesonconfig", styles.Logo)}
	if m.snapshot.MainMenu != "" {
		parts = append(parts, bg.Render(m.snapshot.MainMenu, styles.Text.Bold(true)))
	}
	if m.snapshot.OutputPath != "" {
		parts = append(parts, bg.Render(truncate(m.snapshot.OutputPath, 40), styles.MutedText))
	}
	if m.snapshot.Dirty {
		parts = append(parts, bg.Render("modified", styles.WarningText.Bold(true)))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) renderBreadcrumb() string {
	styles := m.theme.Styles()
	crumb := truncateLeft(breadcrumb(m.stack), m.width-2)
	return styles.AccentText.Bold(true).Padding(0, 1).Render(crumb)
}

func (m Model) renderList() string {
	styles := m.theme.Styles()
	rows := m.listHeight()
	f := m.stack[len(m.stack)-1]

	type row struct {
		text string
		kind kconfig.Kind
	}
	var visible []row
	m.store.View(func(cfg *kconfig.Config) {
		entries, err := cfg.VisibleEntries(f.entries, f.depends)
		if err != nil {
			return
		}
		end := clamp(f.offset+rows, 0, len(entries))
		for _, e := range entries[clamp(f.offset, 0, end):end] {
			visible = append(visible, row{text: rowText(e, m.showNames), kind: e.Kind()})
		}
	})

	lines := make([]string, 0, rows)
	if len(visible) == 0 {
		lines = append(lines, styles.FaintText.Render("  (no visible entries)"))
	}
	for i, r := range visible {
		text := "  " + truncate(r.text, m.width-4)
		switch {
		case f.offset+i == f.cursor:
			lines = append(lines, styles.Selected.Width(m.width).Render(text))
		case r.kind == kconfig.KindComment:
			lines = append(lines, styles.MutedText.Render(text))
		case r.kind == kconfig.KindMenu || r.kind == kconfig.KindChoice:
			lines = append(lines, styles.AccentText.Render(text))
		default:
			lines = append(lines, styles.Text.Render(text))
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	msg := m.snapshot.Status
	style := styles.MutedText
	if m.snapshot.LastError != nil {
		style = styles.DangerText
	}
	if msg == "" {
		msg = fmt.Sprintf("%d entries", len(m.visible()))
	}
	return styles.Footer.Width(m.width).Render(style.Render(truncate(msg, m.width-2)))
}

func (m Model) renderKeyHints() string {
	return lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(m.keys))
}

func (m Model) renderResizeNotice() string {
	styles := m.theme.Styles()
	notice := fmt.Sprintf("Terminal too small: %dx%d\nmesonconfig needs at least %dx%d.", m.width, m.height, MinWidth, MinHeight)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.WarningText.Render(notice))
}

// Messages

type snapshotMsg state.Snapshot

// Commands

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
