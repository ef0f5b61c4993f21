// Package config loads, normalizes and validates caption-timeline settings.
//
// Settings come from a TOML file (by default
// ~/.config/caption-timeline-cli/config.toml), with secrets and the remote
// API location overridable from the environment or a .env file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths holds file locations.
type Paths struct {
	Database    string `toml:"database"`
	LogDir      string `toml:"log_dir"`
	PresetsFile string `toml:"presets_file"`
	MpvSocket   string `toml:"mpv_socket"`
}

// Editor holds interaction and layout settings.
type Editor struct {
	LyricPreset     string  `toml:"lyric_preset"`
	LayoutPreset    string  `toml:"layout_preset"`
	Portrait        bool    `toml:"portrait"`
	PixelsPerSecond float64 `toml:"pixels_per_second"`
	ScrubQuantumMs  int     `toml:"scrub_quantum_ms"`
	SectionGapMs    int     `toml:"section_gap_ms"`
	MaxLanes        int     `toml:"max_lanes"`
	AlignSectionEnd bool    `toml:"align_section_end"`
	MaxWords        int     `toml:"max_words"`
	MaxLines        int     `toml:"max_lines"`
	TickMs          int     `toml:"tick_ms"`
	MirrorOverlay   bool    `toml:"mirror_overlay"`
}

// Persistence selects and tunes the save backend.
type Persistence struct {
	// Backend is "sqlite", "http" or "memory".
	Backend        string `toml:"backend"`
	DebounceMs     int    `toml:"debounce_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
	RetryDelayMs   int    `toml:"retry_delay_ms"`
	KeepRevisions  int    `toml:"keep_revisions"`
}

// API is the remote project API used by the http backend.
type API struct {
	URL       string `toml:"url"`
	ProjectID string `toml:"project_id"`
	Token     string `toml:"token"`
}

// Render holds preview render and export settings.
type Render struct {
	Karaoke  bool `toml:"karaoke"`
	MaxWords int  `toml:"max_words"`
}

// Logging holds log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is every setting the CLI and editor read.
type Config struct {
	Paths       Paths       `toml:"paths"`
	Editor      Editor      `toml:"editor"`
	Persistence Persistence `toml:"persistence"`
	API         API         `toml:"api"`
	Render      Render      `toml:"render"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses and validates a configuration file. A missing file
// yields the defaults. It returns the config, the resolved path and whether
// the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// LoadDotEnv loads KEY=value pairs from files into the environment without
// overriding variables already set. No files means ./.env. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// CreateSample writes the sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Debounce returns the persistence debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Persistence.DebounceMs) * time.Millisecond
}

// SaveTimeout returns the per-save timeout, zero for none.
func (c *Config) SaveTimeout() time.Duration {
	return time.Duration(c.Persistence.TimeoutSeconds) * time.Second
}

// RetryDelay returns the delay between save retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Persistence.RetryDelayMs) * time.Millisecond
}

// Tick returns the player polling interval.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Editor.TickMs) * time.Millisecond
}

// ExpandPath applies the config path rules (tilde expansion, absolute
// paths) to p.
func ExpandPath(p string) (string, error) {
	return expandPath(p)
}

func expandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}
