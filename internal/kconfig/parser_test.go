package kconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func parseString(t *testing.T, src string) *Config {
	t.Helper()
	cfg, err := Parse("Kconfig", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func mustOption(t *testing.T, cfg *Config, name string) *Option {
	t.Helper()
	opt, ok := cfg.FindOption(name)
	if !ok {
		t.Fatalf("FindOption(%q) not found", name)
	}
	return opt
}

const sampleSource = `mainmenu "Sample"

config DEBUG
  bool "Enable debugging"
  default y
  help
    Turns on extra logging.

    Second paragraph.

menu "Networking"
  depends on DEBUG

  config PORT
    int "Listen port"
    default 8080

  choice "Transport"
    config USE_TCP
      bool "TCP"
      default y
    config USE_UDP
      bool "UDP"
  endchoice

  menu "Advanced"
    config HOSTNAME
      string "Host name"
      default "localhost"
      depends on !USE_UDP && (PORT || DEBUG)
  endmenu
endmenu

comment "The end"
`

func TestParse_BuildsTreeInDeclarationOrder(t *testing.T) {
	cfg := parseString(t, sampleSource)

	if cfg.MainMenu() != "Sample" {
		t.Fatalf("MainMenu = %q, want %q", cfg.MainMenu(), "Sample")
	}

	root := cfg.Entries()
	if len(root) != 3 {
		t.Fatalf("len(root) = %d, want 3", len(root))
	}
	if root[0].Kind() != KindOption || root[1].Kind() != KindMenu || root[2].Kind() != KindComment {
		t.Fatalf("root kinds = %v %v %v, want option menu comment", root[0].Kind(), root[1].Kind(), root[2].Kind())
	}

	net := root[1].(*Menu)
	if net.Title != "Networking" || net.DependsOn != "DEBUG" {
		t.Fatalf("menu = %q depends %q, want Networking depends DEBUG", net.Title, net.DependsOn)
	}
	if len(net.Entries) != 3 {
		t.Fatalf("len(Networking.Entries) = %d, want 3", len(net.Entries))
	}
	choice, ok := net.Entries[1].(*Choice)
	if !ok {
		t.Fatalf("Networking.Entries[1] = %T, want *Choice", net.Entries[1])
	}
	if choice.Prompt != "Transport" || len(choice.Entries) != 2 {
		t.Fatalf("choice prompt %q with %d entries, want Transport with 2", choice.Prompt, len(choice.Entries))
	}

	adv := net.Entries[2].(*Menu)
	host := adv.Entries[0].(*Option)
	if host.Type != TypeString || host.DependsOn != "!USE_UDP && (PORT || DEBUG)" {
		t.Fatalf("HOSTNAME = %+v", host)
	}

	if got := root[2].(*Comment).Text; got != "The end" {
		t.Fatalf("comment = %q, want %q", got, "The end")
	}
	if len(cfg.Options()) != 5 {
		t.Fatalf("len(Options) = %d, want 5", len(cfg.Options()))
	}
}

func TestParse_AppliesDefaults(t *testing.T) {
	cfg := parseString(t, sampleSource)

	tests := []struct {
		name string
		want Value
	}{
		{"DEBUG", BoolValue(true)},
		{"PORT", IntValue(8080)},
		{"USE_TCP", BoolValue(true)},
		{"USE_UDP", Value{}},
		{"HOSTNAME", StringValue("localhost")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustOption(t, cfg, tt.name).Value; got != tt.want {
				t.Fatalf("Value = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_HelpBlock(t *testing.T) {
	cfg := parseString(t, sampleSource)

	want := "Turns on extra logging.\n\nSecond paragraph.\n"
	if got := mustOption(t, cfg, "DEBUG").Help; got != want {
		t.Fatalf("Help = %q, want %q", got, want)
	}
}

func TestParse_HelpEndsAtShallowerLine(t *testing.T) {
	cfg := parseString(t, `config A
	bool "A"
	help
	  first
	    nested keeps its text
config B
	bool "B"
`)
	if got := mustOption(t, cfg, "A").Help; got != "first\nnested keeps its text\n" {
		t.Fatalf("Help = %q", got)
	}
	if _, ok := cfg.FindOption("B"); !ok {
		t.Fatalf("B not parsed after help block")
	}
}

func TestParse_OptionClosedByNonFieldLine(t *testing.T) {
	cfg := parseString(t, `menu "M"
config A
  bool "A"
comment "between"
config B
  bool "B"
endmenu
`)
	m := cfg.Entries()[0].(*Menu)
	if len(m.Entries) != 3 {
		t.Fatalf("len(M.Entries) = %d, want 3", len(m.Entries))
	}
	if m.Entries[1].Kind() != KindComment {
		t.Fatalf("M.Entries[1] kind = %v, want comment", m.Entries[1].Kind())
	}
}

func TestParse_ChoicePromptLineAndDepends(t *testing.T) {
	cfg := parseString(t, `config GATE
  bool "Gate"
menu "M"
choice
  prompt "Pick"
  depends on GATE
config X
  bool "X"
endchoice
endmenu
`)
	c := cfg.Entries()[1].(*Menu).Entries[0].(*Choice)
	if c.Prompt != "Pick" || c.DependsOn != "GATE" {
		t.Fatalf("choice = %+v, want prompt Pick depends GATE", c)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		want string
	}{
		{"endmenu at root", "endmenu\n", 1, "unexpected endmenu"},
		{"endchoice in menu", "menu \"M\"\nendchoice\n", 2, "unexpected endchoice"},
		{"choice at root", "choice\n", 1, "only allowed inside a menu"},
		{"nested choice", "menu \"M\"\nchoice\nchoice\n", 3, "nested choice"},
		{"menu in choice", "menu \"M\"\nchoice\nmenu \"N\"\n", 3, "unexpected menu"},
		{"unknown directive", "frobnicate\n", 1, "unknown directive"},
		{"type outside config", "bool \"x\"\n", 1, "outside of a config"},
		{"unterminated menu", "menu \"M\"\nconfig A\n  bool \"A\"\n", 3, "end of file inside menu"},
		{"malformed menu", "menu M\n", 1, "malformed menu"},
		{"bad config name", "config A-B\n", 1, "malformed config name"},
		{"depends without on", "config A\n  bool \"A\"\n  depends A\n", 3, "malformed depends"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("Kconfig", strings.NewReader(tt.src))
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("error = %v, want ErrSyntax", err)
			}
			var kerr *Error
			if !errors.As(err, &kerr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if kerr.Line != tt.line {
				t.Fatalf("Line = %d, want %d (%v)", kerr.Line, tt.line, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParse_SyntaxErrorCarriesHint(t *testing.T) {
	_, err := Parse("Kconfig", strings.NewReader("endmenu\n"))
	if err == nil {
		t.Fatalf("Parse returned nil error")
	}
	if !strings.Contains(err.Error(), "(expected: mainmenu | menu | config | comment | source)") {
		t.Fatalf("error = %q, want the root hint", err.Error())
	}
	if !strings.HasPrefix(err.Error(), "Kconfig:1: ") {
		t.Fatalf("error = %q, want it to start with the position", err.Error())
	}
}

func TestParse_DuplicateMainMenu(t *testing.T) {
	_, err := Parse("Kconfig", strings.NewReader("mainmenu \"A\"\nmainmenu \"B\"\n"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestParse_DuplicateOption(t *testing.T) {
	_, err := Parse("Kconfig", strings.NewReader(`config A
  bool "A"
menu "M"
config A
  bool "again"
endmenu
`))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestOpen_SourceSplicesEntriesAndIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sub/Kconfig", `config CHILD
  bool "Child"
  default y
  depends on PARENT
`)
	top := writeFile(t, dir, "Kconfig", `mainmenu "Top"
config PARENT
  bool "Parent"
  default y
menu "Sub"
source "sub/Kconfig"
comment "after"
endmenu
`)

	cfg, err := Open(top)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	m := cfg.Entries()[1].(*Menu)
	if len(m.Entries) != 2 {
		t.Fatalf("len(Sub.Entries) = %d, want 2", len(m.Entries))
	}
	child, ok := m.Entries[0].(*Option)
	if !ok || child.Name != "CHILD" {
		t.Fatalf("Sub.Entries[0] = %#v, want CHILD", m.Entries[0])
	}
	if !strings.HasSuffix(child.Pos.File, filepath.Join("sub", "Kconfig")) || child.Pos.Line != 1 {
		t.Fatalf("CHILD.Pos = %v, want sub/Kconfig:1", child.Pos)
	}
	if got, _ := cfg.FindOption("CHILD"); got != child {
		t.Fatalf("index does not hold spliced CHILD")
	}
	if !child.Value.Bool {
		t.Fatalf("CHILD default not applied")
	}
}

func TestOpen_SourceDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "other", "config A\n  bool \"A again\"\n")
	top := writeFile(t, dir, "Kconfig", "config A\n  bool \"A\"\nsource \"other\"\n")

	_, err := Open(top)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestOpen_SourceMainMenuCountsOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "other", "mainmenu \"Inner\"\n")
	top := writeFile(t, dir, "Kconfig", "mainmenu \"Outer\"\nsource \"other\"\n")

	_, err := Open(top)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestOpen_MissingSource(t *testing.T) {
	dir := t.TempDir()
	top := writeFile(t, dir, "Kconfig", "source \"nope\"\n")

	_, err := Open(top)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("error = %v, want ErrFileNotFound", err)
	}
}

func TestOpen_MissingTopLevelFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "Kconfig"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("error = %v, want ErrFileNotFound", err)
	}
}

func TestOpen_SelfIncludeStopsAtMaxDepth(t *testing.T) {
	dir := t.TempDir()
	top := writeFile(t, dir, "Kconfig", "source \"Kconfig\"\n")

	_, err := Open(top, WithMaxIncludeDepth(3))
	if !errors.Is(err, ErrIncludeDepth) {
		t.Fatalf("error = %v, want ErrIncludeDepth", err)
	}
}

func TestOpen_LogsSourceInclusion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "other", "config B\n  bool \"B\"\n")
	top := writeFile(t, dir, "Kconfig", "source \"other\"\n")

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	if _, err := Open(top, WithLogger(logger)); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "including source") {
		t.Fatalf("log = %q, want it to mention the included source", buf.String())
	}
}

func TestDump(t *testing.T) {
	cfg := parseString(t, sampleSource)

	var buf bytes.Buffer
	if err := cfg.Dump(&buf); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	want := `CONFIG DEBUG (bool)
MENU: Networking
  CONFIG PORT (int)
  CHOICE
    CONFIG USE_TCP (bool)
    CONFIG USE_UDP (bool)
  MENU: Advanced
    CONFIG HOSTNAME (string)
# The end
`
	if buf.String() != want {
		t.Fatalf("Dump =\n%s\nwant\n%s", buf.String(), want)
	}
}
