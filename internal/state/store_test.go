package state

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/mesonconfig/internal/kconfig"
)

const source = `mainmenu "Session"
config FEATURE
  bool "Feature"
config LEVEL
  int "Level"
  default 2
`

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	cfg, err := kconfig.Parse("Kconfig", strings.NewReader(source))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	out := filepath.Join(t.TempDir(), ".config")
	return NewStore(cfg, out), out
}

func TestStore_SetMarksDirty(t *testing.T) {
	s, _ := newStore(t)

	if snap := s.Snapshot(); snap.Dirty || snap.MainMenu != "Session" {
		t.Fatalf("initial snapshot = %#v, want clean with main menu", snap)
	}

	before := time.Now()
	if err := s.Set("LEVEL", "7"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	snap := s.Snapshot()
	if !snap.Dirty {
		t.Fatalf("Dirty = false after a change")
	}
	if snap.Status != "LEVEL = 7" {
		t.Fatalf("Status = %q, want %q", snap.Status, "LEVEL = 7")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if v, _ := s.Value("LEVEL"); v != kconfig.IntValue(7) {
		t.Fatalf("LEVEL = %v, want 7", v)
	}
}

func TestStore_SetSameValueStaysClean(t *testing.T) {
	s, _ := newStore(t)

	if err := s.Set("LEVEL", "2"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if s.Snapshot().Dirty {
		t.Fatalf("Dirty = true after assigning the current value")
	}
}

func TestStore_SetErrorKeepsValueAndRecordsError(t *testing.T) {
	s, _ := newStore(t)

	err := s.Set("LEVEL", "high")
	if !errors.Is(err, kconfig.ErrTypeConversion) {
		t.Fatalf("Set error = %v, want ErrTypeConversion", err)
	}
	snap := s.Snapshot()
	if snap.LastError == nil || snap.Dirty {
		t.Fatalf("snapshot = %#v, want recorded error and clean state", snap)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(err).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if v, _ := s.Value("LEVEL"); v != kconfig.IntValue(2) {
		t.Fatalf("LEVEL = %v, want 2", v)
	}

	if err := s.Set("NOPE", "y"); !errors.Is(err, kconfig.ErrUnknownOption) {
		t.Fatalf("Set error = %v, want ErrUnknownOption", err)
	}
}

func TestStore_Toggle(t *testing.T) {
	s, _ := newStore(t)

	for _, want := range []bool{true, false, true} {
		if err := s.Toggle("FEATURE"); err != nil {
			t.Fatalf("Toggle returned error: %v", err)
		}
		if v, _ := s.Value("FEATURE"); v != kconfig.BoolValue(want) {
			t.Fatalf("FEATURE = %v, want %v", v, want)
		}
	}

	if err := s.Toggle("LEVEL"); err == nil || !strings.Contains(err.Error(), "cannot be toggled") {
		t.Fatalf("Toggle(LEVEL) error = %v, want cannot be toggled", err)
	}
}

func TestStore_SaveAndReload(t *testing.T) {
	s, out := newStore(t)

	if err := s.Set("FEATURE", "y"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Dirty || snap.LastSaved.IsZero() {
		t.Fatalf("snapshot after save = %#v, want clean with LastSaved", snap)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "FEATURE=y\n") {
		t.Fatalf("saved file = %q, want FEATURE=y", data)
	}

	if err := s.Set("FEATURE", "n"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if v, _ := s.Value("FEATURE"); v != kconfig.BoolValue(true) {
		t.Fatalf("FEATURE = %v after reload, want y", v)
	}
	if s.Snapshot().Dirty {
		t.Fatalf("Dirty = true after reload")
	}
}

func TestStore_ReloadMissingFile(t *testing.T) {
	s, _ := newStore(t)

	err := s.Reload()
	if !errors.Is(err, kconfig.ErrFileNotFound) {
		t.Fatalf("Reload error = %v, want ErrFileNotFound", err)
	}
	if s.Snapshot().LastError == nil {
		t.Fatalf("LastError = nil, want recorded error")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Toggle("FEATURE")
		}()
		go func() {
			defer wg.Done()
			s.View(func(cfg *kconfig.Config) { _ = cfg.Visible() })
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
}
