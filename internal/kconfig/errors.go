package kconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrDuplicate      = errors.New("duplicate definition")
	ErrUnresolved     = errors.New("unresolved dependency")
	ErrMissingField   = errors.New("missing field")
	ErrFileNotFound   = errors.New("file not found")
	ErrUnknownOption  = errors.New("unknown option")
	ErrTypeConversion = errors.New("type conversion")
	ErrIncludeDepth   = errors.New("include depth exceeded")
)

// Error describes a construction or runtime failure.
type Error struct {
	Kind error
	File string
	Line int
	Msg  string
	Hint string // expected tokens, syntax errors only
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	switch {
	case e.File != "" && e.Line > 0:
		fmt.Fprintf(&b, "%s:%d: ", e.File, e.Line)
	case e.File != "":
		b.WriteString(e.File + ": ")
	case e.Line > 0:
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Msg)
	if e.Hint != "" {
		b.WriteString(" (expected: " + e.Hint + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Is matches the error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func errAt(kind error, pos Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, File: pos.File, Line: pos.Line, Msg: fmt.Sprintf(format, args...)}
}
