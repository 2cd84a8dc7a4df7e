package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownloads()
	c.normalizeServices()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDir) == "" {
		c.Paths.HistoryDir = defaultHistoryDir
	}
	if c.Paths.HistoryDir, err = expandPath(c.Paths.HistoryDir); err != nil {
		return fmt.Errorf("paths.history_dir: %w", err)
	}
	c.Paths.DestDir = strings.TrimSpace(c.Paths.DestDir)
	if c.Paths.DestDir != "" {
		if c.Paths.DestDir, err = expandPath(c.Paths.DestDir); err != nil {
			return fmt.Errorf("paths.dest_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeDownloads() {
	c.Downloads.Language = strings.ToLower(strings.TrimSpace(c.Downloads.Language))
	if c.Downloads.Language == "" {
		c.Downloads.Language = defaultLanguage
	}
	if c.Downloads.Workers <= 0 {
		c.Downloads.Workers = defaultWorkers
	}
	if len(c.Downloads.VideoExtensions) == 0 {
		c.Downloads.VideoExtensions = defaultVideoExtensions()
	}
	normalized := make([]string, 0, len(c.Downloads.VideoExtensions))
	for _, ext := range c.Downloads.VideoExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Downloads.VideoExtensions = normalized
}

func (c *Config) normalizeServices() {
	c.Napiprojekt.BaseURL = strings.TrimRight(strings.TrimSpace(c.Napiprojekt.BaseURL), "/")
	if c.Napiprojekt.BaseURL == "" {
		c.Napiprojekt.BaseURL = defaultNapiprojektBaseURL
	}
	c.Napiprojekt.Client = strings.TrimSpace(c.Napiprojekt.Client)
	if c.Napiprojekt.Client == "" {
		c.Napiprojekt.Client = defaultNapiprojektClient
	}
	c.Napiprojekt.ClientVersion = strings.TrimSpace(c.Napiprojekt.ClientVersion)
	if c.Napiprojekt.ClientVersion == "" {
		c.Napiprojekt.ClientVersion = defaultNapiprojektClientVer
	}
	if c.Napiprojekt.TimeoutSeconds <= 0 {
		c.Napiprojekt.TimeoutSeconds = defaultTimeoutSeconds
	}

	c.Napisy24.BaseURL = strings.TrimRight(strings.TrimSpace(c.Napisy24.BaseURL), "/")
	if c.Napisy24.BaseURL == "" {
		c.Napisy24.BaseURL = defaultNapisy24BaseURL
	}
	c.Napisy24.UserAgent = strings.TrimSpace(c.Napisy24.UserAgent)
	if c.Napisy24.UserAgent == "" {
		c.Napisy24.UserAgent = defaultNapisy24UserAgent
	}
	if c.Napisy24.APIKey == "" {
		c.Napisy24.APIKey = defaultNapisy24APIKey
	}
	if c.Napisy24.TimeoutSeconds <= 0 {
		c.Napisy24.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
