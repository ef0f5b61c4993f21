package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePersistence(); err != nil {
		return err
	}
	if err := c.validateEditor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePersistence() error {
	switch c.Persistence.Backend {
	case BackendSQLite, BackendMemory:
	case BackendHTTP:
		if c.API.URL == "" {
			return fmt.Errorf("api.url is required for the http backend. Set %s or edit the config file", EnvAPIURL)
		}
		u, err := url.Parse(c.API.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.url %q is not an absolute URL", c.API.URL)
		}
	default:
		return fmt.Errorf("persistence.backend must be sqlite, http or memory, got %q", c.Persistence.Backend)
	}
	if c.Persistence.RetryAttempts < 0 {
		return errors.New("persistence.retry_attempts must not be negative")
	}
	if c.Persistence.TimeoutSeconds < 0 {
		return errors.New("persistence.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.MaxLanes > 50 {
		return errors.New("editor.max_lanes must be at most 50")
	}
	if c.Editor.TickMs < 16 {
		return errors.New("editor.tick_ms must be at least 16")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
