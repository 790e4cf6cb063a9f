package kconfig

import (
	"fmt"
	"strconv"
)

// Type is the declared scalar type of an option.
type Type string

const (
	TypeBool   Type = "bool"
	TypeInt    Type = "int"
	TypeString Type = "string"
)

// ParseType maps a type keyword to its Type.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeBool, TypeInt, TypeString:
		return Type(s), true
	}
	return "", false
}

// Kind identifies the variant held by an Entry.
type Kind int

const (
	KindOption Kind = iota
	KindMenu
	KindChoice
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindMenu:
		return "menu"
	case KindChoice:
		return "choice"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is one node of the configuration tree. The set of implementations is
// closed: *Option, *Menu, *Choice and *Comment.
type Entry interface {
	Kind() Kind
	Position() Pos
	entry()
}

// Pos records where an entry was declared.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Value is a typed option value. The zero Value is unset.
type Value struct {
	Type Type
	Bool bool
	Int  int64
	Str  string
}

// BoolValue returns a set bool Value.
func BoolValue(b bool) Value { return Value{Type: TypeBool, Bool: b} }

// IntValue returns a set int Value.
func IntValue(i int64) Value { return Value{Type: TypeInt, Int: i} }

// StringValue returns a set string Value.
func StringValue(s string) Value { return Value{Type: TypeString, Str: s} }

// IsSet reports whether the value was assigned by a default, a load or a set.
func (v Value) IsSet() bool { return v.Type != "" }

// Truthy reports how the value reads inside a dependency expression.
// Unset values are false.
func (v Value) Truthy() bool {
	switch v.Type {
	case TypeBool:
		return v.Bool
	case TypeInt:
		return v.Int != 0
	case TypeString:
		return v.Str != ""
	}
	return false
}

// Format renders the value the way it is persisted: y/n for bools, quoted
// strings and decimal ints. Unset values render as "".
func (v Value) Format() string {
	switch v.Type {
	case TypeBool:
		if v.Bool {
			return "y"
		}
		return "n"
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeString:
		return `"` + v.Str + `"`
	}
	return ""
}

// String renders the value for display, without quoting.
func (v Value) String() string {
	if v.Type == TypeString {
		return v.Str
	}
	return v.Format()
}

// Option is a named, typed configurable leaf.
type Option struct {
	Name       string
	Type       Type
	Prompt     string
	Default    string // raw literal, interpreted when defaults are applied
	HasDefault bool
	DependsOn  string
	Help       string
	Value      Value
	Pos        Pos

	typed bool // a type line was seen
}

// Menu is an ordered, optionally dependency-gated group of entries.
type Menu struct {
	Title     string
	DependsOn string
	Entries   []Entry
	Pos       Pos
}

// Choice groups related options. Exclusivity of its members is not enforced.
type Choice struct {
	Prompt    string
	DependsOn string
	Entries   []Entry
	Pos       Pos
}

// Comment is display-only text.
type Comment struct {
	Text string
	Pos  Pos
}

func (*Option) Kind() Kind  { return KindOption }
func (*Menu) Kind() Kind    { return KindMenu }
func (*Choice) Kind() Kind  { return KindChoice }
func (*Comment) Kind() Kind { return KindComment }

func (o *Option) Position() Pos  { return o.Pos }
func (m *Menu) Position() Pos    { return m.Pos }
func (c *Choice) Position() Pos  { return c.Pos }
func (c *Comment) Position() Pos { return c.Pos }

func (*Option) entry()  {}
func (*Menu) entry()    {}
func (*Choice) entry()  {}
func (*Comment) entry() {}

// Children returns the nested entries of a Menu or Choice, or nil.
func Children(e Entry) []Entry {
	switch e := e.(type) {
	case *Menu:
		return e.Entries
	case *Choice:
		return e.Entries
	}
	return nil
}
