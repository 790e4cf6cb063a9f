package kconfig

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
)

// DefaultMaxIncludeDepth bounds nested source directives.
const DefaultMaxIncludeDepth = 16

// Config is a parsed, validated configuration tree with its option values.
//
// Reads are side-effect free. Config does no locking; callers that mutate it
// from several goroutines must serialize writers themselves.
type Config struct {
	path        string
	mainMenu    string
	hasMainMenu bool
	entries     []Entry
	index       map[string]*Option

	// Parsed dependency expressions, filled during construction only.
	exprs map[string]Expr

	logger *log.Logger
}

// ParseOption customizes construction.
type ParseOption func(*parseOptions)

type parseOptions struct {
	logger          *log.Logger
	maxIncludeDepth int
}

// WithLogger routes construction diagnostics to logger.
func WithLogger(logger *log.Logger) ParseOption {
	return func(o *parseOptions) { o.logger = logger }
}

// WithMaxIncludeDepth overrides DefaultMaxIncludeDepth. Values below 1 are
// ignored.
func WithMaxIncludeDepth(depth int) ParseOption {
	return func(o *parseOptions) {
		if depth > 0 {
			o.maxIncludeDepth = depth
		}
	}
}

func buildOptions(opts []ParseOption) *parseOptions {
	o := &parseOptions{maxIncludeDepth: DefaultMaxIncludeDepth}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Open parses the file at path, following source directives, validates the
// resulting tree and applies option defaults. No partially built tree is
// returned on error.
func Open(path string, opts ...ParseOption) (*Config, error) {
	o := buildOptions(opts)
	tree, err := parseFile(path, 0, o)
	if err != nil {
		return nil, err
	}
	return finish(tree, o)
}

// Parse is like Open but reads the top-level source from r. Relative source
// directives resolve against the directory of name.
func Parse(name string, r io.Reader, opts ...ParseOption) (*Config, error) {
	o := buildOptions(opts)
	tree, err := parseReader(name, r, 0, o)
	if err != nil {
		return nil, err
	}
	return finish(tree, o)
}

func parseFile(path string, depth int, o *parseOptions) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Kind: ErrFileNotFound, File: path, Msg: "cannot open", Err: err}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseReader(path, f, depth, o)
}

func parseReader(name string, r io.Reader, depth int, o *parseOptions) (*Config, error) {
	tree := &Config{
		path:   name,
		index:  make(map[string]*Option),
		logger: o.logger,
	}
	p := newParser(tree, name, depth, o)
	if err := p.run(r); err != nil {
		return nil, err
	}
	return tree, nil
}

func finish(tree *Config, o *parseOptions) (*Config, error) {
	if err := tree.validate(); err != nil {
		return nil, err
	}
	tree.applyDefaults()
	o.logger.Debug("configuration loaded", "file", tree.path, "options", len(tree.index))
	return tree, nil
}

func (c *Config) applyDefaults() {
	for _, opt := range c.index {
		if !opt.HasDefault {
			continue
		}
		// Defaults were checked by validate.
		v, err := opt.normalize(opt.Default)
		if err != nil {
			continue
		}
		opt.Value = v
	}
}

// Path returns the top-level source file name.
func (c *Config) Path() string { return c.path }

// MainMenu returns the mainmenu title, or "" when none was declared.
func (c *Config) MainMenu() string { return c.mainMenu }

// Entries returns the root entries in declaration order.
func (c *Config) Entries() []Entry { return c.entries }

// FindOption looks up an option by name anywhere in the tree.
func (c *Config) FindOption(name string) (*Option, bool) {
	opt, ok := c.index[name]
	return opt, ok
}

// Options returns every option sorted by name.
func (c *Config) Options() []*Option {
	out := make([]*Option, 0, len(c.index))
	for _, opt := range c.index {
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
