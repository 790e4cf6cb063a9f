package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/mesonconfig/internal/kconfig"
)

// Snapshot summarizes the editing session for the UI.
type Snapshot struct {
	MainMenu    string
	OutputPath  string
	Dirty       bool // values changed since the last load or save
	Status      string
	LastError   error
	LastUpdated time.Time
	LastSaved   time.Time
}

// Store serializes access to a configuration tree shared by the UI and
// the commands that mutate it.
type Store struct {
	mu       sync.RWMutex
	cfg      *kconfig.Config
	output   string
	snapshot Snapshot
}

// NewStore wraps cfg. output is the value file Save and Reload use.
func NewStore(cfg *kconfig.Config, output string) *Store {
	return &Store{
		cfg:    cfg,
		output: output,
		snapshot: Snapshot{
			MainMenu:   cfg.MainMenu(),
			OutputPath: output,
		},
	}
}

// View runs fn with shared access to the tree. fn must not mutate it or
// retain it after returning.
func (s *Store) View(fn func(cfg *kconfig.Config)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.cfg)
}

// Value returns the current value of the named option.
func (s *Store) Value(name string) (kconfig.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opt, ok := s.cfg.FindOption(name)
	if !ok {
		return kconfig.Value{}, false
	}
	return opt.Value, true
}

// Set assigns raw to the named option. On error the value is kept and the
// error is recorded for display.
func (s *Store) Set(name, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opt, ok := s.cfg.FindOption(name)
	if !ok {
		return s.fail(s.cfg.SetOption(name, raw))
	}
	before := opt.Value
	if err := s.cfg.SetOption(name, raw); err != nil {
		return s.fail(err)
	}
	if opt.Value != before {
		s.snapshot.Dirty = true
	}
	s.succeed(fmt.Sprintf("%s = %s", name, opt.Value.Format()))
	return nil
}

// Toggle flips a bool option.
func (s *Store) Toggle(name string) error {
	s.mu.RLock()
	opt, ok := s.cfg.FindOption(name)
	var isBool, current bool
	if ok {
		isBool = opt.Type == kconfig.TypeBool
		current = opt.Value.Bool
	}
	s.mu.RUnlock()

	switch {
	case !ok:
		return s.Set(name, "y")
	case !isBool:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.fail(fmt.Errorf("%s is a %s option and cannot be toggled", name, opt.Type))
	case current:
		return s.Set(name, "n")
	}
	return s.Set(name, "y")
}

// Save writes every value to the output file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.SaveConfig(s.output); err != nil {
		return s.fail(fmt.Errorf("save %s: %w", s.output, err))
	}
	s.snapshot.Dirty = false
	s.snapshot.LastSaved = time.Now()
	s.succeed("configuration written to " + s.output)
	return nil
}

// Reload replaces the current values with those in the output file. A
// missing file is reported but not treated as fatal by callers.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.LoadConfig(s.output); err != nil {
		if errors.Is(err, kconfig.ErrFileNotFound) {
			return s.fail(fmt.Errorf("no saved configuration at %s: %w", s.output, err))
		}
		return s.fail(fmt.Errorf("reload %s: %w", s.output, err))
	}
	s.snapshot.Dirty = false
	s.succeed("configuration loaded from " + s.output)
	return nil
}

// Snapshot returns a copy of the session summary.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Notify sets the status line without touching values.
func (s *Store) Notify(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.succeed(msg)
}

func (s *Store) fail(err error) error {
	s.snapshot.LastError = err
	s.snapshot.Status = err.Error()
	s.snapshot.LastUpdated = time.Now()
	return err
}

func (s *Store) succeed(msg string) {
	s.snapshot.LastError = nil
	s.snapshot.Status = msg
	s.snapshot.LastUpdated = time.Now()
}
