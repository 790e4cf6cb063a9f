package kconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const generatedHeader = "# Automatically generated by mesonconfig; do not edit."

// SetOption normalizes raw for the named option and assigns it. Unlike
// Load, unknown names are an error. On error the value is left unchanged.
func (c *Config) SetOption(name, raw string) error {
	opt, ok := c.index[name]
	if !ok {
		return &Error{Kind: ErrUnknownOption, Msg: fmt.Sprintf("unknown option %s", name)}
	}
	v, err := opt.normalize(raw)
	if err != nil {
		return err
	}
	opt.Value = v
	return nil
}

// LoadConfig reads name=value lines from path. See Load.
func (c *Config) LoadConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Error{Kind: ErrFileNotFound, File: path, Msg: "cannot open", Err: err}
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return c.load(path, f)
}

// Load reads name=value lines. Blank lines, lines starting with # and lines
// without = are skipped, as are names the tree does not define. Values are
// normalized per the option type. Either every recognized line is applied or,
// on error, none is.
func (c *Config) Load(r io.Reader) error {
	return c.load("", r)
}

func (c *Config) load(name string, r io.Reader) error {
	type assignment struct {
		opt *Option
		v   Value
	}
	var pending []assignment

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		opt, ok := c.index[strings.TrimSpace(key)]
		if !ok {
			c.logger.Debug("ignoring unknown option", "name", strings.TrimSpace(key), "line", lineno)
			continue
		}
		v, err := opt.normalize(raw)
		if err != nil {
			var kerr *Error
			if errors.As(err, &kerr) {
				kerr.File, kerr.Line = name, lineno
			}
			return err
		}
		pending = append(pending, assignment{opt, v})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	for _, a := range pending {
		a.opt.Value = a.v
	}
	return nil
}

// Save writes every option holding a value as name=value, sorted by name,
// after a generated-file header. Unset options are omitted. The output only
// depends on the current values.
func (c *Config) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, generatedHeader)
	if c.mainMenu != "" {
		fmt.Fprintf(bw, "# %s\n", c.mainMenu)
	}
	for _, opt := range c.Options() {
		if !opt.Value.IsSet() {
			continue
		}
		fmt.Fprintf(bw, "%s=%s\n", opt.Name, opt.Value.Format())
	}
	return bw.Flush()
}

// SaveConfig writes Save's output to path, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := c.Save(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	c.logger.Debug("configuration saved", "file", path)
	return nil
}
