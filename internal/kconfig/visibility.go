package kconfig

import "fmt"

// Eval evaluates a dependency expression against the current values.
// Unknown or unset options read as false.
func (c *Config) Eval(expr string) (bool, error) {
	parsed, ok := c.exprs[expr]
	if !ok {
		var err error
		parsed, err = ParseExpr(expr)
		if err != nil {
			return false, &Error{Kind: ErrSyntax, Msg: fmt.Sprintf("invalid expression %q", expr), Err: err}
		}
	}
	return parsed.Eval(c.truth), nil
}

func (c *Config) truth(name string) bool {
	opt, ok := c.index[name]
	return ok && opt.Value.Truthy()
}

// allTrue evaluates each expression in order, stopping at the first false.
func (c *Config) allTrue(exprs ...string) (bool, error) {
	for _, expr := range exprs {
		if expr == "" {
			continue
		}
		ok, err := c.Eval(expr)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// IsVisible reports whether opt's own dependency and those of every enclosing
// menu hold. Choices contribute nothing. Options not in the tree are not
// visible.
func (c *Config) IsVisible(opt *Option) bool {
	visible, found := c.findVisible(c.entries, opt, nil)
	return found && visible
}

func (c *Config) findVisible(entries []Entry, target *Option, inherited []string) (visible, found bool) {
	for _, e := range entries {
		switch e := e.(type) {
		case *Option:
			if e == target {
				ok, _ := c.allTrue(appendDepends(inherited, e.DependsOn)...)
				return ok, true
			}
		case *Menu:
			combined := appendDepends(inherited, e.DependsOn)
			// A hidden menu hides its whole subtree.
			if ok, _ := c.allTrue(combined...); !ok {
				if containsOption(e.Entries, target) {
					return false, true
				}
				continue
			}
			if v, f := c.findVisible(e.Entries, target, combined); f {
				return v, true
			}
		case *Choice:
			if v, f := c.findVisible(e.Entries, target, inherited); f {
				return v, true
			}
		}
	}
	return false, false
}

func containsOption(entries []Entry, target *Option) bool {
	for _, e := range entries {
		if e == Entry(target) {
			return true
		}
		if containsOption(Children(e), target) {
			return true
		}
	}
	return false
}

// VisibleEntries filters entries down to what is currently visible, keeping
// declaration order. parentDepends is the inherited context of entries, ""
// for the root. Options and menus pass when their own expression and the
// inherited one hold; choices and comments always pass.
func (c *Config) VisibleEntries(entries []Entry, parentDepends string) ([]Entry, error) {
	tree, err := c.VisibleTree(entries, parentDepends)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(tree))
	for i, n := range tree {
		out[i] = n.Entry
	}
	return out, nil
}

// Visible returns the visible root entries.
func (c *Config) Visible() []Entry {
	out, _ := c.VisibleEntries(c.entries, "")
	return out
}

// VisibleNode is a visible entry together with its own visible children.
type VisibleNode struct {
	Entry Entry
	// Depends is the combined context the node's children are filtered with.
	Depends  string
	Children []VisibleNode
}

// VisibleTree is VisibleEntries with menu children filtered recursively,
// using each menu's combined expression as the new inherited context.
// Choice children are filtered with the choice's own inherited context.
func (c *Config) VisibleTree(entries []Entry, parentDepends string) ([]VisibleNode, error) {
	if parentDepends != "" {
		if _, err := c.Eval(parentDepends); err != nil {
			return nil, err
		}
	}
	return c.visibleTree(entries, parentDepends)
}

func (c *Config) visibleTree(entries []Entry, parentDepends string) ([]VisibleNode, error) {
	var out []VisibleNode
	for _, e := range entries {
		switch e := e.(type) {
		case *Option:
			ok, err := c.allTrue(parentDepends, e.DependsOn)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, VisibleNode{Entry: e, Depends: parentDepends})
			}
		case *Menu:
			combined := JoinDepends(parentDepends, e.DependsOn)
			ok, err := c.allTrue(parentDepends, e.DependsOn)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			children, err := c.visibleTree(e.Entries, combined)
			if err != nil {
				return nil, err
			}
			out = append(out, VisibleNode{Entry: e, Depends: combined, Children: children})
		case *Choice:
			children, err := c.visibleTree(e.Entries, parentDepends)
			if err != nil {
				return nil, err
			}
			out = append(out, VisibleNode{Entry: e, Depends: parentDepends, Children: children})
		case *Comment:
			out = append(out, VisibleNode{Entry: e, Depends: parentDepends})
		}
	}
	return out, nil
}

// OptionParents returns the AND-joined depends of every menu and choice
// enclosing the named option. ok is false when the option is unknown or no
// ancestor carries a dependency.
func (c *Config) OptionParents(name string) (expr string, ok bool) {
	acc, found := optionParents(c.entries, name, nil)
	if !found || len(acc) == 0 {
		return "", false
	}
	return JoinDepends(acc...), true
}

func optionParents(entries []Entry, name string, acc []string) ([]string, bool) {
	for _, e := range entries {
		switch e := e.(type) {
		case *Option:
			if e.Name == name {
				return acc, true
			}
		case *Menu:
			if got, ok := optionParents(e.Entries, name, appendDepends(acc, e.DependsOn)); ok {
				return got, true
			}
		case *Choice:
			if got, ok := optionParents(e.Entries, name, appendDepends(acc, e.DependsOn)); ok {
				return got, true
			}
		}
	}
	return nil, false
}

// MenuDepends returns the combined expression menu's children inherit, or ""
// when neither the menu nor its ancestors carry one.
func (c *Config) MenuDepends(menu *Menu) string {
	acc, found := menuPath(c.entries, menu, nil)
	if !found {
		return ""
	}
	return JoinDepends(acc...)
}

func menuPath(entries []Entry, target *Menu, acc []string) ([]string, bool) {
	for _, e := range entries {
		switch e := e.(type) {
		case *Menu:
			next := appendDepends(acc, e.DependsOn)
			if e == target {
				return next, true
			}
			if got, ok := menuPath(e.Entries, target, next); ok {
				return got, true
			}
		case *Choice:
			if got, ok := menuPath(e.Entries, target, acc); ok {
				return got, true
			}
		}
	}
	return nil, false
}

// appendDepends returns a fresh slice so sibling walks never share backing
// storage.
func appendDepends(acc []string, expr string) []string {
	out := make([]string, 0, len(acc)+1)
	out = append(out, acc...)
	if expr != "" {
		out = append(out, expr)
	}
	return out
}
