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

// Paths contains directory configuration.
type Paths struct {
	DestDir    string `toml:"dest_dir"`
	LogDir     string `toml:"log_dir"`
	HistoryDir string `toml:"history_dir"`
}

// Downloads contains configuration for subtitle retrieval behaviour.
type Downloads struct {
	Language        string   `toml:"language"`
	Workers         int      `toml:"workers"`
	Update          bool     `toml:"update"`
	Backup          bool     `toml:"backup"`
	ConvertEncoding bool     `toml:"convert_encoding"`
	VideoExtensions []string `toml:"video_extensions"`
}

// Napiprojekt contains configuration for the NAPI-PROJEKT service.
type Napiprojekt struct {
	BaseURL        string `toml:"base_url"`
	Client         string `toml:"client"`
	ClientVersion  string `toml:"client_version"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Napisy24 contains configuration for the NAPISY24 service.
type Napisy24 struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// History contains configuration for the download journal.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for napi.
//
// Configuration sections by subsystem:
//   - Paths: destination, log, and history directories
//   - Downloads: language, worker bound, overwrite/backup policy
//   - Napiprojekt: NAPI-PROJEKT endpoint and client identity
//   - Napisy24: NAPISY24 endpoint and client credentials
//   - History: local download journal
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Downloads   Downloads   `toml:"downloads"`
	Napiprojekt Napiprojekt `toml:"napiprojekt"`
	Napisy24    Napisy24    `toml:"napisy24"`
	History     History     `toml:"history"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/napi/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. A missing file is not an error;
// defaults apply.
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
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
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

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.History.Enabled {
		dirs = append(dirs, c.Paths.HistoryDir)
	}
	if strings.TrimSpace(c.Paths.DestDir) != "" {
		dirs = append(dirs, c.Paths.DestDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryDBPath returns the location of the download journal database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.HistoryDir, "history.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
