package kconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// parseContext is the nesting state of the line parser.
type parseContext int

const (
	ctxRoot parseContext = iota
	ctxMenu
	ctxChoice
	ctxOption
)

func (c parseContext) String() string {
	switch c {
	case ctxRoot:
		return "root"
	case ctxMenu:
		return "menu"
	case ctxChoice:
		return "choice"
	case ctxOption:
		return "config"
	}
	return "unknown"
}

// expected lists the directives accepted in each context, for error hints.
var expected = map[parseContext]string{
	ctxRoot:   "mainmenu | menu | config | comment | source",
	ctxMenu:   "menu | endmenu | choice | config | comment | source | depends on",
	ctxChoice: "config | prompt | comment | source | depends on | endchoice",
	ctxOption: "bool | int | string | default | depends on | help",
}

// frame is one level of the context stack. Container frames own the entry
// list that new entries are appended to.
type frame struct {
	ctx     parseContext
	entries *[]Entry
	menu    *Menu
	choice  *Choice
	option  *Option
}

type parser struct {
	tree  *Config
	file  string
	dir   string
	depth int
	opts  *parseOptions

	stack []frame
	line  int

	help       *Option
	helpIndent int
}

func newParser(tree *Config, file string, depth int, opts *parseOptions) *parser {
	return &parser{
		tree:  tree,
		file:  file,
		dir:   filepath.Dir(file),
		depth: depth,
		opts:  opts,
		stack: []frame{{ctx: ctxRoot, entries: &tree.entries}},
	}
}

func (p *parser) top() *frame { return &p.stack[len(p.stack)-1] }

func (p *parser) push(f frame) { p.stack = append(p.stack, f) }

func (p *parser) pop() { p.stack = p.stack[:len(p.stack)-1] }

func (p *parser) pos() Pos { return Pos{File: p.file, Line: p.line} }

func (p *parser) syntaxErr(hint, format string, args ...any) error {
	e := errAt(ErrSyntax, p.pos(), format, args...)
	e.Hint = hint
	return e
}

// closeOption leaves any open config context.
func (p *parser) closeOption() {
	for p.top().ctx == ctxOption {
		p.pop()
	}
}

func (p *parser) add(e Entry) {
	f := p.top()
	*f.entries = append(*f.entries, e)
}

func (p *parser) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimRight(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", p.file, err)
	}
	p.endHelp()
	p.closeOption()

	switch p.top().ctx {
	case ctxMenu:
		return p.syntaxErr("endmenu", "unexpected end of file inside menu %q", p.top().menu.Title)
	case ctxChoice:
		return p.syntaxErr("endchoice", "unexpected end of file inside choice")
	}
	return nil
}

func (p *parser) parseLine(raw string) error {
	stripped := strings.TrimSpace(raw)
	indent := indentWidth(raw)

	if p.help != nil {
		if stripped == "" {
			if p.help.Help != "" {
				p.help.Help += "\n"
			}
			return nil
		}
		if indent > p.helpIndent {
			p.help.Help += stripped + "\n"
			return nil
		}
		p.endHelp()
	}

	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return nil
	}

	if p.top().ctx == ctxOption && !isOptionField(stripped) {
		p.closeOption()
	}

	keyword, rest := splitKeyword(stripped)
	switch keyword {
	case "mainmenu":
		return p.parseMainMenu(rest)
	case "menu":
		return p.parseMenu(rest)
	case "endmenu":
		return p.parseEnd(ctxMenu, "endmenu")
	case "choice":
		return p.parseChoice(rest)
	case "endchoice":
		return p.parseEnd(ctxChoice, "endchoice")
	case "prompt":
		return p.parsePrompt(rest)
	case "comment":
		return p.parseComment(rest)
	case "source":
		return p.parseSource(rest)
	case "config":
		return p.parseConfig(rest)
	case "bool", "int", "string":
		return p.parseType(keyword, rest)
	case "default":
		return p.parseDefault(rest)
	case "depends":
		return p.parseDepends(rest)
	case "help", "---help---":
		return p.parseHelp(rest, indent)
	}
	return p.syntaxErr(expected[p.top().ctx], "unknown directive %q", keyword)
}

func (p *parser) parseMainMenu(rest string) error {
	title, ok := quoted(rest)
	if !ok {
		return p.syntaxErr(`mainmenu "<title>"`, "malformed mainmenu")
	}
	if p.tree.hasMainMenu {
		return errAt(ErrDuplicate, p.pos(), "duplicate mainmenu %q (already %q)", title, p.tree.mainMenu)
	}
	p.tree.mainMenu = title
	p.tree.hasMainMenu = true
	return nil
}

func (p *parser) parseMenu(rest string) error {
	if ctx := p.top().ctx; ctx != ctxRoot && ctx != ctxMenu {
		return p.syntaxErr(expected[ctx], "unexpected menu inside %s", ctx)
	}
	title, ok := quoted(rest)
	if !ok {
		return p.syntaxErr(`menu "<title>"`, "malformed menu")
	}
	m := &Menu{Title: title, Pos: p.pos()}
	p.add(m)
	p.push(frame{ctx: ctxMenu, entries: &m.Entries, menu: m})
	return nil
}

func (p *parser) parseEnd(want parseContext, keyword string) error {
	p.closeOption()
	if ctx := p.top().ctx; ctx != want {
		return p.syntaxErr(expected[ctx], "unexpected %s inside %s", keyword, ctx)
	}
	p.pop()
	return nil
}

func (p *parser) parseChoice(rest string) error {
	if ctx := p.top().ctx; ctx != ctxMenu {
		if ctx == ctxChoice {
			return p.syntaxErr(expected[ctx], "nested choice is not allowed")
		}
		return p.syntaxErr(expected[ctx], "choice is only allowed inside a menu")
	}
	c := &Choice{Pos: p.pos()}
	if rest != "" {
		prompt, ok := quoted(rest)
		if !ok {
			return p.syntaxErr(`choice ["<prompt>"]`, "malformed choice")
		}
		c.Prompt = prompt
	}
	p.add(c)
	p.push(frame{ctx: ctxChoice, entries: &c.Entries, choice: c})
	return nil
}

func (p *parser) parsePrompt(rest string) error {
	f := p.top()
	if f.ctx != ctxChoice {
		return p.syntaxErr(expected[f.ctx], "prompt is only allowed inside a choice")
	}
	prompt, ok := quoted(rest)
	if !ok {
		return p.syntaxErr(`prompt "<text>"`, "malformed prompt")
	}
	f.choice.Prompt = prompt
	return nil
}

func (p *parser) parseComment(rest string) error {
	text, ok := quoted(rest)
	if !ok {
		return p.syntaxErr(`comment "<text>"`, "malformed comment")
	}
	p.add(&Comment{Text: text, Pos: p.pos()})
	return nil
}

func (p *parser) parseConfig(rest string) error {
	name := strings.TrimSpace(rest)
	if !isIdent(name) {
		return p.syntaxErr("config <name>", "malformed config name %q", name)
	}
	if prev, ok := p.tree.index[name]; ok {
		return errAt(ErrDuplicate, p.pos(), "duplicate option %s (first defined at %s)", name, prev.Pos)
	}
	opt := &Option{Name: name, Pos: p.pos()}
	p.add(opt)
	p.tree.index[name] = opt
	p.push(frame{ctx: ctxOption, option: opt})
	return nil
}

func (p *parser) currentOption(keyword string) (*Option, error) {
	f := p.top()
	if f.ctx != ctxOption {
		return nil, p.syntaxErr(expected[f.ctx], "%s outside of a config block", keyword)
	}
	return f.option, nil
}

func (p *parser) parseType(keyword, rest string) error {
	opt, err := p.currentOption(keyword)
	if err != nil {
		return err
	}
	if opt.typed {
		return errAt(ErrDuplicate, p.pos(), "option %s already has type %s", opt.Name, opt.Type)
	}
	opt.Type = Type(keyword)
	opt.typed = true
	if rest != "" {
		prompt, ok := quoted(rest)
		if !ok {
			return p.syntaxErr(keyword+` "<prompt>"`, "malformed prompt for %s", opt.Name)
		}
		opt.Prompt = prompt
	}
	return nil
}

func (p *parser) parseDefault(rest string) error {
	opt, err := p.currentOption("default")
	if err != nil {
		return err
	}
	if rest == "" {
		return p.syntaxErr("default <value>", "missing default value for %s", opt.Name)
	}
	opt.Default = rest
	opt.HasDefault = true
	return nil
}

func (p *parser) parseDepends(rest string) error {
	word, expr := splitKeyword(rest)
	if word != "on" || expr == "" {
		return p.syntaxErr("depends on <expr>", "malformed depends")
	}
	f := p.top()
	switch f.ctx {
	case ctxOption:
		f.option.DependsOn = expr
	case ctxMenu:
		f.menu.DependsOn = expr
	case ctxChoice:
		f.choice.DependsOn = expr
	default:
		return p.syntaxErr(expected[f.ctx], "depends on outside of a config, menu or choice")
	}
	return nil
}

func (p *parser) parseHelp(rest string, indent int) error {
	opt, err := p.currentOption("help")
	if err != nil {
		return err
	}
	if rest != "" {
		return p.syntaxErr("help", "unexpected text after help")
	}
	opt.Help = ""
	p.help = opt
	p.helpIndent = indent
	return nil
}

func (p *parser) endHelp() {
	if p.help == nil {
		return
	}
	if h := strings.TrimRight(p.help.Help, "\n"); h != "" {
		p.help.Help = h + "\n"
	} else {
		p.help.Help = ""
	}
	p.help = nil
}

func (p *parser) parseSource(rest string) error {
	rel, ok := quoted(rest)
	if !ok {
		rel = strings.TrimSpace(rest)
	}
	if rel == "" {
		return p.syntaxErr(`source "<path>"`, "missing source path")
	}
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.dir, rel)
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		e := errAt(ErrFileNotFound, p.pos(), "source file not found: %s", path)
		e.Err = err
		return e
	}
	if p.depth+1 > p.opts.maxIncludeDepth {
		return errAt(ErrIncludeDepth, p.pos(), "source %s exceeds the maximum include depth of %d", path, p.opts.maxIncludeDepth)
	}

	p.opts.logger.Debug("including source", "file", path, "from", p.pos().String(), "depth", p.depth+1)
	sub, err := parseFile(path, p.depth+1, p.opts)
	if err != nil {
		return err
	}
	return p.merge(sub)
}

// merge splices a sub-parse into the current position.
func (p *parser) merge(sub *Config) error {
	if sub.hasMainMenu {
		if p.tree.hasMainMenu {
			return errAt(ErrDuplicate, p.pos(), "duplicate mainmenu %q from %s (already %q)", sub.mainMenu, sub.path, p.tree.mainMenu)
		}
		p.tree.mainMenu = sub.mainMenu
		p.tree.hasMainMenu = true
	}
	for name, opt := range sub.index {
		if prev, ok := p.tree.index[name]; ok {
			return errAt(ErrDuplicate, opt.Pos, "duplicate option %s from source (first defined at %s)", name, prev.Pos)
		}
	}
	for name, opt := range sub.index {
		p.tree.index[name] = opt
	}
	f := p.top()
	*f.entries = append(*f.entries, sub.entries...)
	return nil
}

// isOptionField reports whether a line belongs to an open config block.
func isOptionField(line string) bool {
	keyword, rest := splitKeyword(line)
	switch keyword {
	case "bool", "int", "string", "default", "help", "---help---":
		return true
	case "depends":
		word, _ := splitKeyword(rest)
		return word == "on"
	}
	return false
}

func splitKeyword(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// quoted extracts the text between the first and last double quote.
func quoted(s string) (string, bool) {
	s = strings.TrimSpace(s)
	first := strings.IndexByte(s, '"')
	last := strings.LastIndexByte(s, '"')
	if first != 0 || last <= first || last != len(s)-1 {
		return "", false
	}
	return s[first+1 : last], true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

const tabWidth = 8

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width
		}
	}
	return width
}
