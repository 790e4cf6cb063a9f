package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mesonconfig/internal/kconfig"
	"github.com/five82/mesonconfig/internal/prefs"
	"github.com/five82/mesonconfig/internal/state"
)

const uiSource = `mainmenu "UI test"
config DEBUG
  bool "Enable debugging"
  default y
  help
    Turns on extra logging.
menu "Networking"
  depends on DEBUG
config PORT
  int "Listen port"
  default 8080
config HOST
  string "Host name"
choice "Transport"
config USE_TCP
  bool "TCP"
config USE_UDP
  bool "UDP"
endchoice
endmenu
comment "The end"
`

type harness struct {
	m      Model
	store  *state.Store
	output string
	prefs  string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	cfg, err := kconfig.Parse("Kconfig", strings.NewReader(uiSource))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	dir := t.TempDir()
	h := &harness{
		output: filepath.Join(dir, ".config"),
		prefs:  filepath.Join(dir, "prefs.toml"),
	}
	h.store = state.NewStore(cfg, h.output)
	opts.Store = h.store
	opts.PrefsPath = h.prefs
	h.m = New(opts)
	h.send(t, tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

// send delivers msg and feeds back any dialog result the command produces.
// It returns the last command so callers can check for quitting.
func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	if cmd == nil {
		return nil
	}
	if _, editing := h.m.modal.(editModal); editing {
		// Cursor blink commands wait on a timer.
		return cmd
	}
	switch result := cmd().(type) {
	case editResultMsg, exitChoiceMsg:
		return h.send(t, result)
	}
	return cmd
}

func (h *harness) keys(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(t, keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func (h *harness) value(t *testing.T, name string) kconfig.Value {
	t.Helper()
	v, ok := h.store.Value(name)
	if !ok {
		t.Fatalf("option %s not found", name)
	}
	return v
}

func visibleLabels(m Model) []string {
	var out []string
	for _, e := range m.visible() {
		out = append(out, entryLabel(e))
	}
	return out
}

func TestModel_RendersRootMenu(t *testing.T) {
	h := newHarness(t, Options{})

	view := h.m.View()
	for _, want := range []string{"mesonconfig", "UI test", "Enable debugging", "Networking  --->", "*** The end ***"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_LoadingBeforeWindowSize(t *testing.T) {
	cfg, err := kconfig.Parse("Kconfig", strings.NewReader(uiSource))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	m := New(Options{Store: state.NewStore(cfg, ".config"), PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
}

func TestModel_ToggleHidesDependentMenu(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "space")
	if got := h.value(t, "DEBUG"); got != kconfig.BoolValue(false) {
		t.Fatalf("DEBUG = %v, want n", got)
	}
	if got := strings.Join(visibleLabels(h.m), ","); got != `DEBUG,comment "The end"` {
		t.Fatalf("visible = %s", got)
	}
	if !h.m.snapshot.Dirty {
		t.Fatalf("snapshot not dirty after toggle")
	}

	h.keys(t, "y")
	if got := h.value(t, "DEBUG"); got != kconfig.BoolValue(true) {
		t.Fatalf("DEBUG = %v after y, want y", got)
	}
	h.keys(t, "n")
	if got := h.value(t, "DEBUG"); got != kconfig.BoolValue(false) {
		t.Fatalf("DEBUG = %v after n, want n", got)
	}
}

func TestModel_EnterMenuAndChoice(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "j", "enter")
	if len(h.m.stack) != 2 {
		t.Fatalf("stack depth = %d, want 2", len(h.m.stack))
	}
	if got := breadcrumb(h.m.stack); got != "UI test > Networking" {
		t.Fatalf("breadcrumb = %q", got)
	}
	if got := strings.Join(visibleLabels(h.m), ","); got != `PORT,HOST,choice "Transport"` {
		t.Fatalf("visible = %s", got)
	}

	h.keys(t, "G", "enter")
	frame := h.m.stack[len(h.m.stack)-1]
	if frame.title != "Transport" || frame.depends != "DEBUG" {
		t.Fatalf("choice frame = %+v, want Transport with inherited DEBUG", frame)
	}
	if got := strings.Join(visibleLabels(h.m), ","); got != "USE_TCP,USE_UDP" {
		t.Fatalf("choice members = %s", got)
	}

	h.keys(t, "esc", "esc")
	if len(h.m.stack) != 1 {
		t.Fatalf("stack depth = %d after leaving, want 1", len(h.m.stack))
	}
}

func TestModel_EditIntValue(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "j", "enter", "enter")
	if _, ok := h.m.modal.(editModal); !ok {
		t.Fatalf("modal = %T, want editModal", h.m.modal)
	}
	h.keys(t, "ctrl+u", "9", "0", "9", "0", "enter")

	if h.m.modal != nil {
		t.Fatalf("modal still open: %T", h.m.modal)
	}
	if got := h.value(t, "PORT"); got != kconfig.IntValue(9090) {
		t.Fatalf("PORT = %v, want 9090", got)
	}
}

func TestModel_EditRejectsInvalidInt(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "j", "enter", "enter", "ctrl+u", "x", "enter")

	if got := h.value(t, "PORT"); got != kconfig.IntValue(8080) {
		t.Fatalf("PORT = %v, want unchanged 8080", got)
	}
	if h.m.snapshot.LastError == nil {
		t.Fatalf("LastError = nil, want conversion error")
	}
	if view := h.m.View(); !strings.Contains(view, "not a valid int") {
		t.Fatalf("status bar should show the error:\n%s", view)
	}
}

func TestModel_EditStringCancel(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "j", "enter", "j", "enter", "a", "esc")
	if h.m.modal != nil {
		t.Fatalf("modal still open after esc")
	}
	if got := h.value(t, "HOST"); got.IsSet() {
		t.Fatalf("HOST = %v, want unset", got)
	}
	if len(h.m.stack) != 2 {
		t.Fatalf("esc in the editor should not leave the menu")
	}
}

func TestModel_ExitWithoutChangesQuits(t *testing.T) {
	h := newHarness(t, Options{})

	if cmd := h.keys(t, "esc"); !isQuit(cmd) {
		t.Fatalf("esc at root with no changes should quit")
	}
}

func TestModel_ExitDialog(t *testing.T) {
	tests := []struct {
		name     string
		answer   []string
		quit     bool
		wantFile bool
	}{
		{"enter saves", []string{"enter"}, true, true},
		{"y saves", []string{"y"}, true, true},
		{"n discards", []string{"n"}, true, false},
		{"right then enter discards", []string{"right", "enter"}, true, false},
		{"esc keeps editing", []string{"esc"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{})
			h.keys(t, "space", "esc")
			if _, ok := h.m.modal.(exitDialog); !ok {
				t.Fatalf("modal = %T, want exitDialog", h.m.modal)
			}
			if view := h.m.View(); !strings.Contains(view, exitQuestion) {
				t.Fatalf("dialog view missing question:\n%s", view)
			}

			var cmd tea.Cmd
			for _, k := range tt.answer {
				if k == "right" {
					cmd = h.send(t, tea.KeyMsg{Type: tea.KeyRight})
					continue
				}
				cmd = h.keys(t, k)
			}

			if got := isQuit(cmd); got != tt.quit {
				t.Fatalf("quit = %v, want %v", got, tt.quit)
			}
			_, err := os.Stat(h.output)
			if gotFile := err == nil; gotFile != tt.wantFile {
				t.Fatalf("output written = %v, want %v", gotFile, tt.wantFile)
			}
			if !tt.quit && h.m.modal != nil {
				t.Fatalf("dialog still open after esc")
			}
		})
	}
}

func TestModel_SaveAndReloadKeys(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "space", "S")
	data, err := os.ReadFile(h.output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "DEBUG=n\n") {
		t.Fatalf("saved file = %q, want DEBUG=n", data)
	}
	if h.m.snapshot.Dirty {
		t.Fatalf("snapshot dirty after save")
	}

	h.keys(t, "space")
	if got := h.value(t, "DEBUG"); got != kconfig.BoolValue(true) {
		t.Fatalf("DEBUG = %v, want y before reload", got)
	}
	h.keys(t, "L")
	if got := h.value(t, "DEBUG"); got != kconfig.BoolValue(false) {
		t.Fatalf("DEBUG = %v after reload, want n", got)
	}
}

func TestModel_ThemeAndNamesPersist(t *testing.T) {
	h := newHarness(t, Options{ThemeName: "Classic"})

	h.keys(t, "T", "N")
	if h.m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", h.m.theme.Name)
	}
	if view := h.m.View(); !strings.Contains(view, "(DEBUG)") {
		t.Fatalf("names should be shown:\n%s", view)
	}

	p, err := prefs.Load(h.prefs)
	if err != nil {
		t.Fatalf("prefs.Load returned error: %v", err)
	}
	if p.Theme != "Nightfox" || !p.ShowNames {
		t.Fatalf("prefs = %#v, want Nightfox with names", p)
	}
}

func TestModel_MinimumSize(t *testing.T) {
	h := newHarness(t, Options{})
	h.send(t, tea.WindowSizeMsg{Width: 60, Height: 10})
	if view := h.m.View(); !strings.Contains(view, "Terminal too small") {
		t.Fatalf("view should ask for a larger terminal:\n%s", view)
	}
	h.keys(t, "space")
	if got := h.value(t, "DEBUG"); got != kconfig.BoolValue(true) {
		t.Fatalf("keys should be ignored while the terminal is too small")
	}

	h = newHarness(t, Options{DisableMinSizeCheck: true})
	h.send(t, tea.WindowSizeMsg{Width: 60, Height: 10})
	if view := h.m.View(); strings.Contains(view, "Terminal too small") {
		t.Fatalf("size check should be disabled:\n%s", view)
	}
}

func TestModel_OptionHelp(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "?")
	if _, ok := h.m.modal.(optionHelpModal); !ok {
		t.Fatalf("modal = %T, want optionHelpModal", h.m.modal)
	}
	view := h.m.View()
	for _, want := range []string{"DEBUG [=y]", "Turns on extra logging."} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q:\n%s", want, view)
		}
	}
	h.keys(t, "esc")
	if h.m.modal != nil {
		t.Fatalf("help still open after esc")
	}

	h.keys(t, "h")
	if _, ok := h.m.modal.(keyHelpModal); !ok {
		t.Fatalf("modal = %T, want keyHelpModal", h.m.modal)
	}
	h.keys(t, "x")
	if h.m.modal != nil {
		t.Fatalf("key help should close on any key")
	}
}

func TestModel_CtrlCQuitsFromDialog(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "j", "enter", "enter")
	if cmd := h.keys(t, "ctrl+c"); !isQuit(cmd) {
		t.Fatalf("ctrl+c should quit even with the editor open")
	}
}

func TestModel_CursorClampsWhenEntriesDisappear(t *testing.T) {
	h := newHarness(t, Options{})

	h.keys(t, "G")
	if got := h.m.stack[0].cursor; got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
	if err := h.store.Set("DEBUG", "n"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	h.keys(t, "j")
	if got := h.m.stack[0].cursor; got != 1 {
		t.Fatalf("cursor = %d, want 1 once Networking is hidden", got)
	}
}
