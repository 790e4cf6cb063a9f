package kconfig

import "fmt"

// validate checks the merged tree and caches every dependency expression.
func (c *Config) validate() error {
	c.exprs = make(map[string]Expr)
	seen := make(map[string]*Option, len(c.index))
	return c.validateEntries(c.entries, seen)
}

func (c *Config) validateEntries(entries []Entry, seen map[string]*Option) error {
	for _, e := range entries {
		switch e := e.(type) {
		case *Option:
			if prev, ok := seen[e.Name]; ok {
				return errAt(ErrDuplicate, e.Pos, "duplicate option %s (first defined at %s)", e.Name, prev.Pos)
			}
			seen[e.Name] = e

			if _, ok := ParseType(string(e.Type)); !ok {
				return errAt(ErrMissingField, e.Pos, "option %s has no valid type", e.Name)
			}
			if e.Prompt == "" {
				return errAt(ErrMissingField, e.Pos, "option %s is missing a prompt", e.Name)
			}
			if e.HasDefault {
				if _, err := e.normalize(e.Default); err != nil {
					kerr := errAt(ErrTypeConversion, e.Pos, "invalid default for option %s", e.Name)
					kerr.Err = err
					return kerr
				}
			}
			if err := c.checkDepends(e.DependsOn, e.Pos, "option "+e.Name); err != nil {
				return err
			}

		case *Menu:
			if err := c.checkDepends(e.DependsOn, e.Pos, fmt.Sprintf("menu %q", e.Title)); err != nil {
				return err
			}
			if err := c.validateEntries(e.Entries, seen); err != nil {
				return err
			}

		case *Choice:
			if len(e.Entries) == 0 {
				return errAt(ErrMissingField, e.Pos, "choice block must contain at least one entry")
			}
			if err := c.checkDepends(e.DependsOn, e.Pos, "choice"); err != nil {
				return err
			}
			if err := c.validateEntries(e.Entries, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkDepends parses expr and resolves each identifier against the index.
func (c *Config) checkDepends(expr string, pos Pos, owner string) error {
	if expr == "" {
		return nil
	}
	parsed, err := ParseExpr(expr)
	if err != nil {
		kerr := errAt(ErrSyntax, pos, "%s: invalid depends on %q", owner, expr)
		kerr.Hint = "identifiers joined by && || ! and parentheses"
		kerr.Err = err
		return kerr
	}
	for _, name := range Idents(parsed) {
		if _, ok := c.index[name]; !ok {
			return errAt(ErrUnresolved, pos, "%s depends on unknown option %s", owner, name)
		}
	}
	c.exprs[expr] = parsed
	return nil
}
