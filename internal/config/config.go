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

// Config holds the lifter settings.
type Config struct {
	DataDir       string
	CatalogSource string
	LogFile       string
	LogLevel      string
	// LogMaxSizeMB and LogMaxBackups bound log rotation.
	LogMaxSizeMB  int
	LogMaxBackups int
}

const (
	defaultConfigPath    = "~/.config/lifter/config.toml"
	defaultDataDir       = "~/.local/share/lifter"
	defaultLogFile       = "~/.local/state/lifter/lifter.log"
	defaultLogLevel      = "info"
	defaultCatalogSource = "bundled"
	defaultLogMaxSizeMB  = 5
	defaultLogMaxBackups = 3
)

// Load locates and parses the lifter config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

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
		DataDir       string `toml:"data_dir"`
		CatalogSource string `toml:"catalog_source"`
		LogFile       string `toml:"log_file"`
		LogLevel      string `toml:"log_level"`
		LogMaxSizeMB  int    `toml:"log_max_size_mb"`
		LogMaxBackups int    `toml:"log_max_backups"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if src := strings.TrimSpace(raw.CatalogSource); src != "" {
		cfg.CatalogSource = src
	}
	if file := strings.TrimSpace(raw.LogFile); file != "" {
		cfg.LogFile = mustExpand(file)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.LogMaxSizeMB > 0 {
		cfg.LogMaxSizeMB = raw.LogMaxSizeMB
	}
	if raw.LogMaxBackups > 0 {
		cfg.LogMaxBackups = raw.LogMaxBackups
	}

	return cfg, nil
}

// Override applies command-line values on top of the file settings. Blank
// values leave the setting unchanged.
func (c *Config) Override(dataDir, catalogSource string) {
	if dir := strings.TrimSpace(dataDir); dir != "" {
		c.DataDir = mustExpand(dir)
	}
	if src := strings.TrimSpace(catalogSource); src != "" {
		c.CatalogSource = src
	}
}

// PrefsPath returns the preferences file that sits next to the default config.
func (c Config) PrefsPath() string {
	return mustExpand(filepath.Join(filepath.Dir(defaultConfigPath), "prefs.toml"))
}

func defaults() Config {
	return Config{
		DataDir:       mustExpand(defaultDataDir),
		CatalogSource: defaultCatalogSource,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      defaultLogLevel,
		LogMaxSizeMB:  defaultLogMaxSizeMB,
		LogMaxBackups: defaultLogMaxBackups,
	}
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
