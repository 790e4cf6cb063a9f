package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the tool settings for mesonconfig.
type Config struct {
	KconfigFile         string
	OutputFile          string
	MaxIncludeDepth     int
	DisableMinSizeCheck bool
	LogFile             string
}

const (
	defaultConfigPath      = "~/.config/mesonconfig/config.toml"
	defaultKconfigFile     = "Kconfig"
	defaultOutputFile      = ".config"
	defaultMaxIncludeDepth = 16
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		KconfigFile:     defaultKconfigFile,
		OutputFile:      defaultOutputFile,
		MaxIncludeDepth: defaultMaxIncludeDepth,
	}
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the settings file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		KconfigFile         string `toml:"kconfig_file"`
		OutputFile          string `toml:"output_file"`
		MaxIncludeDepth     int    `toml:"max_include_depth"`
		DisableMinSizeCheck bool   `toml:"disable_min_size_check"`
		LogFile             string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.KconfigFile); v != "" {
		cfg.KconfigFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.OutputFile); v != "" {
		cfg.OutputFile = mustExpand(v)
	}
	if raw.MaxIncludeDepth < 0 {
		return Config{}, fmt.Errorf("parse config: max_include_depth must not be negative, got %d", raw.MaxIncludeDepth)
	}
	if raw.MaxIncludeDepth > 0 {
		cfg.MaxIncludeDepth = raw.MaxIncludeDepth
	}
	cfg.DisableMinSizeCheck = raw.DisableMinSizeCheck
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
