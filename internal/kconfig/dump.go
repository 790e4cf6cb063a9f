package kconfig

import (
	"fmt"
	"io"
	"strings"
)

// Dump prints the tree for debugging, two spaces per nesting level.
func (c *Config) Dump(w io.Writer) error {
	return dumpEntries(w, c.entries, 0)
}

func dumpEntries(w io.Writer, entries []Entry, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		var err error
		switch e := e.(type) {
		case *Menu:
			if _, err = fmt.Fprintf(w, "%sMENU: %s\n", indent, e.Title); err == nil {
				err = dumpEntries(w, e.Entries, depth+1)
			}
		case *Choice:
			if _, err = fmt.Fprintf(w, "%sCHOICE\n", indent); err == nil {
				err = dumpEntries(w, e.Entries, depth+1)
			}
		case *Option:
			_, err = fmt.Fprintf(w, "%sCONFIG %s (%s)\n", indent, e.Name, e.Type)
		case *Comment:
			_, err = fmt.Fprintf(w, "%s# %s\n", indent, e.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
