package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Mkvmerge contains settings for the external mkvmerge binary.
type Mkvmerge struct {
	// Binary is the mkvmerge executable name or absolute path.
	Binary string `toml:"binary"`
	// TimeoutSeconds bounds every invocation; zero disables the timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// IdentifyCache contains settings for the identification result cache.
type IdentifyCache struct {
	Enabled    bool   `toml:"enabled"`
	Dir        string `toml:"dir"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for mkvmux.
type Config struct {
	Mkvmerge      Mkvmerge      `toml:"mkvmerge"`
	IdentifyCache IdentifyCache `toml:"identify_cache"`
	Logging       Logging       `toml:"logging"`
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string { return sampleConfig }

// CreateSample writes the sample configuration to the given path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/mkvmux/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the resolved path, and whether a file existed there. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err = os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Mkvmerge.Binary) == "" {
		c.Mkvmerge.Binary = defaultMkvmergeBinary
	}
	if strings.TrimSpace(c.IdentifyCache.Dir) == "" {
		c.IdentifyCache.Dir = defaultCacheDir
	}
	if c.IdentifyCache.Dir, err = ExpandPath(c.IdentifyCache.Dir); err != nil {
		return fmt.Errorf("identify_cache.dir: %w", err)
	}
	if c.IdentifyCache.MaxAgeDays <= 0 {
		c.IdentifyCache.MaxAgeDays = defaultCacheMaxAgeDays
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if c.Logging.Dir, err = ExpandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	if c.Mkvmerge.TimeoutSeconds < 0 {
		return fmt.Errorf("mkvmerge.timeout_seconds must not be negative, got %d", c.Mkvmerge.TimeoutSeconds)
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		return fmt.Errorf("logging.format must be console, text, or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// EnsureDirectories creates the directories mkvmux writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{}
	if c.IdentifyCache.Enabled {
		dirs = append(dirs, c.IdentifyCache.Dir)
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves a leading ~ against the user's home directory and
// returns an absolute path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
