package kconfig

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNot
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func tokenize(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '!':
			toks = append(toks, token{tokNot, "!", i})
			i++
		case strings.HasPrefix(src[i:], "&&"):
			toks = append(toks, token{tokAnd, "&&", i})
			i += 2
		case strings.HasPrefix(src[i:], "||"):
			toks = append(toks, token{tokOr, "||", i})
			i += 2
		case isWordByte(c):
			start := i
			for i < len(src) && isWordByte(src[i]) {
				i++
			}
			word := src[start:i]
			switch word {
			case "and":
				toks = append(toks, token{tokAnd, word, start})
			case "or":
				toks = append(toks, token{tokOr, word, start})
			default:
				toks = append(toks, token{tokIdent, word, start})
			}
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return toks, nil
}

// Expr is a parsed dependency expression.
type Expr interface {
	// Eval evaluates the expression, resolving identifiers through truth.
	Eval(truth func(name string) bool) bool
	String() string
}

type identExpr struct{ name string }

type notExpr struct{ x Expr }

type binaryExpr struct {
	and  bool
	l, r Expr
}

func (e identExpr) Eval(truth func(string) bool) bool { return truth(e.name) }
func (e identExpr) String() string                    { return e.name }

func (e notExpr) Eval(truth func(string) bool) bool { return !e.x.Eval(truth) }
func (e notExpr) String() string                    { return "!" + e.x.String() }

func (e binaryExpr) Eval(truth func(string) bool) bool {
	if e.and {
		return e.l.Eval(truth) && e.r.Eval(truth)
	}
	return e.l.Eval(truth) || e.r.Eval(truth)
}

func (e binaryExpr) String() string {
	op := " || "
	if e.and {
		op = " && "
	}
	return "(" + e.l.String() + op + e.r.String() + ")"
}

// ParseExpr parses a dependency expression.
//
//	or   := and { ("||" | "or") and }
//	and  := not { ("&&" | "and") not }
//	not  := "!" not | atom
//	atom := IDENT | "(" or ")"
func ParseExpr(src string) (Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	p := &exprParser{toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected token %q after expression", p.toks[p.pos].text)
	}
	return e, nil
}

type exprParser struct {
	toks []token
	pos  int
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) parseOr() (Expr, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOr {
			return l, nil
		}
		p.pos++
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = binaryExpr{and: false, l: l, r: r}
	}
}

func (p *exprParser) parseAnd() (Expr, error) {
	l, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokAnd {
			return l, nil
		}
		p.pos++
		r, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		l = binaryExpr{and: true, l: l, r: r}
	}
}

func (p *exprParser) parseNot() (Expr, error) {
	if t, ok := p.peek(); ok && t.kind == tokNot {
		p.pos++
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notExpr{x: x}, nil
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokIdent:
		p.pos++
		return identExpr{name: t.text}, nil
	case tokLParen:
		p.pos++
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c, ok := p.peek(); !ok || c.kind != tokRParen {
			return nil, fmt.Errorf("unmatched '(' at offset %d", t.pos)
		}
		p.pos++
		return e, nil
	}
	return nil, fmt.Errorf("unexpected token %q at offset %d", t.text, t.pos)
}

// Idents lists the identifiers referenced by e, in order of first use.
func Idents(e Expr) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case identExpr:
			if !seen[e.name] {
				seen[e.name] = true
				out = append(out, e.name)
			}
		case notExpr:
			walk(e.x)
		case binaryExpr:
			walk(e.l)
			walk(e.r)
		}
	}
	walk(e)
	return out
}

// JoinDepends AND-joins dependency expressions, skipping empty ones.
// Compound parts are parenthesized so the result keeps each part's meaning.
func JoinDepends(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	for i, p := range kept {
		if !isSimpleOperand(p) {
			kept[i] = "(" + p + ")"
		}
	}
	return strings.Join(kept, " && ")
}

// isSimpleOperand reports whether s is a single identifier, optionally negated.
func isSimpleOperand(s string) bool {
	toks, err := tokenize(s)
	if err != nil {
		return false
	}
	for len(toks) > 0 && toks[0].kind == tokNot {
		toks = toks[1:]
	}
	return len(toks) == 1 && toks[0].kind == tokIdent
}
