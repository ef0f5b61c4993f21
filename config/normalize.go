package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEditor()
	c.normalizePersistence()
	c.normalizeAPI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabasePath
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PresetsFile) == "" {
		c.Paths.PresetsFile = defaultPresetsFile
	}
	if c.Paths.PresetsFile, err = expandPath(c.Paths.PresetsFile); err != nil {
		return fmt.Errorf("paths.presets_file: %w", err)
	}
	c.Paths.MpvSocket = strings.TrimSpace(c.Paths.MpvSocket)
	if c.Paths.MpvSocket == "" {
		c.Paths.MpvSocket = defaultMpvSocket
	}
	return nil
}

func (c *Config) normalizeEditor() {
	e := &c.Editor
	e.LyricPreset = strings.TrimSpace(e.LyricPreset)
	if e.LyricPreset == "" {
		e.LyricPreset = defaultLyricPreset
	}
	e.LayoutPreset = strings.TrimSpace(e.LayoutPreset)
	if e.LayoutPreset == "" {
		e.LayoutPreset = defaultLayoutPreset
	}
	if e.PixelsPerSecond <= 0 {
		e.PixelsPerSecond = defaultPixelsPerSecond
	}
	if e.ScrubQuantumMs <= 0 {
		e.ScrubQuantumMs = defaultScrubQuantumMs
	}
	if e.SectionGapMs <= 0 {
		e.SectionGapMs = defaultSectionGapMs
	}
	if e.MaxLanes <= 0 {
		e.MaxLanes = defaultMaxLanes
	}
	if e.MaxWords <= 0 {
		e.MaxWords = defaultMaxWords
	}
	if e.MaxLines <= 0 {
		e.MaxLines = defaultMaxLines
	}
	if e.TickMs <= 0 {
		e.TickMs = defaultTickMs
	}
	if c.Render.MaxWords <= 0 {
		c.Render.MaxWords = e.MaxWords
	}
}

func (c *Config) normalizePersistence() {
	p := &c.Persistence
	p.Backend = strings.ToLower(strings.TrimSpace(p.Backend))
	if p.Backend == "" {
		p.Backend = defaultBackend
	}
	if p.DebounceMs <= 0 {
		p.DebounceMs = defaultDebounceMs
	}
	if p.RetryDelayMs <= 0 {
		p.RetryDelayMs = defaultRetryDelayMs
	}
	if p.KeepRevisions <= 0 {
		p.KeepRevisions = defaultKeepRevisions
	}
}

func (c *Config) normalizeAPI() {
	if value, ok := os.LookupEnv(EnvAPIURL); ok && strings.TrimSpace(value) != "" {
		c.API.URL = value
	}
	if value, ok := os.LookupEnv(EnvAPIToken); ok && strings.TrimSpace(value) != "" {
		c.API.Token = value
	}
	if c.API.ProjectID == "" {
		if value, ok := os.LookupEnv(EnvAPIProject); ok {
			c.API.ProjectID = value
		}
	}
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	c.API.Token = strings.TrimSpace(c.API.Token)
	c.API.ProjectID = strings.TrimSpace(c.API.ProjectID)
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
