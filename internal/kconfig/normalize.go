package kconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var truthyLiterals = map[string]bool{
	"y":    true,
	"yes":  true,
	"true": true,
	"1":    true,
}

// Normalize converts a raw literal to a Value of type t.
//
// Bools never fail: anything outside y/yes/true/1 (case-insensitive) is false.
// Ints are parsed base 10. Strings lose at most one layer of surrounding
// double quotes.
func Normalize(t Type, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)

	switch t {
	case TypeBool:
		return BoolValue(truthyLiterals[strings.ToLower(raw)]), nil
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, &Error{
				Kind: ErrTypeConversion,
				Msg:  fmt.Sprintf("%q is not a valid int", raw),
			}
		}
		return IntValue(n), nil
	case TypeString:
		return StringValue(unquote(raw)), nil
	}
	return Value{}, &Error{Kind: ErrTypeConversion, Msg: fmt.Sprintf("unsupported type %q", t)}
}

func (o *Option) normalize(raw string) (Value, error) {
	v, err := Normalize(o.Type, raw)
	if err != nil {
		var kerr *Error
		if errors.As(err, &kerr) {
			kerr.Msg = "option " + o.Name + ": " + kerr.Msg
		}
		return Value{}, err
	}
	return v, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
