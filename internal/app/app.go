package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/mesonconfig/internal/config"
	"github.com/five82/mesonconfig/internal/kconfig"
	"github.com/five82/mesonconfig/internal/prefs"
	"github.com/five82/mesonconfig/internal/state"
	"github.com/five82/mesonconfig/internal/ui"
)

// Options configure a mesonconfig session. Non-empty fields override the
// settings file.
type Options struct {
	SettingsPath string // empty uses ~/.config/mesonconfig/config.toml
	KconfigFile  string
	OutputFile   string
	LogFile      string
	Verbose      bool
	PrefsPath    string // empty uses ~/.config/mesonconfig/prefs.toml

	// LogOutput receives log records when no log file is configured.
	// The TUI leaves it nil so nothing is written over the screen.
	LogOutput io.Writer
}

// Session is a parsed configuration tree with its values loaded.
type Session struct {
	Settings config.Config
	Config   *kconfig.Config
	Store    *state.Store
	Logger   *log.Logger

	logFile *os.File
}

// Open loads settings, parses the Kconfig tree and applies any saved values
// from the output file. A missing output file is not an error.
func Open(opts Options) (*Session, error) {
	settings, err := Settings(opts)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := newLogger(settings.LogFile, opts.Verbose, opts.LogOutput)
	if err != nil {
		return nil, err
	}
	s := &Session{Settings: settings, Logger: logger, logFile: logFile}

	cfg, err := kconfig.Open(settings.KconfigFile,
		kconfig.WithLogger(logger),
		kconfig.WithMaxIncludeDepth(settings.MaxIncludeDepth),
	)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Config = cfg

	if err := cfg.LoadConfig(settings.OutputFile); err != nil {
		if !errors.Is(err, kconfig.ErrFileNotFound) {
			_ = s.Close()
			return nil, fmt.Errorf("load values: %w", err)
		}
		logger.Debug("no saved values, using defaults", "file", settings.OutputFile)
	}

	s.Store = state.NewStore(cfg, settings.OutputFile)
	return s, nil
}

// Close releases the log file, if any.
func (s *Session) Close() error {
	if s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	return err
}

// Run opens a session and blocks in the menuconfig UI until the user exits.
func Run(opts Options) error {
	s, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		s.Logger.Warn("could not load preferences", "error", err)
	}

	s.Logger.Info("starting menuconfig", "kconfig", s.Settings.KconfigFile, "output", s.Settings.OutputFile)
	return ui.Run(ui.Options{
		Store:               s.Store,
		Logger:              s.Logger,
		ThemeName:           userPrefs.Theme,
		ShowNames:           userPrefs.ShowNames,
		PrefsPath:           opts.PrefsPath,
		DisableMinSizeCheck: s.Settings.DisableMinSizeCheck,
	})
}

// Settings loads the settings file and applies the overrides in opts.
func Settings(opts Options) (config.Config, error) {
	settings, err := config.Load(opts.SettingsPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load settings: %w", err)
	}
	if err := applyOverrides(&settings, opts); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

func applyOverrides(settings *config.Config, opts Options) error {
	for _, o := range []struct {
		flag  string
		value string
		dst   *string
	}{
		{"kconfig", opts.KconfigFile, &settings.KconfigFile},
		{"output", opts.OutputFile, &settings.OutputFile},
		{"log-file", opts.LogFile, &settings.LogFile},
	} {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		path, err := config.ExpandPath(o.value)
		if err != nil {
			return fmt.Errorf("--%s: %w", o.flag, err)
		}
		*o.dst = path
	}
	return nil
}

// newLogger writes to path when set, else to fallback, else nowhere.
func newLogger(path string, verbose bool, fallback io.Writer) (*log.Logger, *os.File, error) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	var w io.Writer = io.Discard
	var file *os.File
	switch {
	case path != "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, file = f, f
	case fallback != nil:
		w = fallback
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "mesonconfig",
		Level:           level,
		ReportTimestamp: file != nil,
	})
	return logger, file, nil
}
