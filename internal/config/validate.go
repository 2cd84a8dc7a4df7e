package config

import (
	"errors"
	"fmt"

	"napi/internal/language"
)

const maxWorkers = 32

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownloads(); err != nil {
		return err
	}
	if err := c.validateServices(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownloads() error {
	if !language.Supported(c.Downloads.Language) {
		return fmt.Errorf("downloads.language: unsupported language %q (use one of %v)", c.Downloads.Language, language.Codes())
	}
	if c.Downloads.Workers > maxWorkers {
		return fmt.Errorf("downloads.workers must be at most %d", maxWorkers)
	}
	if len(c.Downloads.VideoExtensions) == 0 {
		return errors.New("downloads.video_extensions must not be empty")
	}
	return nil
}

func (c *Config) validateServices() error {
	if c.Napiprojekt.BaseURL == "" {
		return errors.New("napiprojekt.base_url must be set")
	}
	if c.Napisy24.Enabled {
		if c.Napisy24.BaseURL == "" {
			return errors.New("napisy24.base_url must be set when napisy24.enabled is true")
		}
		if c.Napisy24.APIKey == "" {
			return errors.New("napisy24.api_key must be set when napisy24.enabled is true")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
