// Package config loads rickdex settings from YAML with environment overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all rickdex configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Browse  BrowseConfig  `yaml:"browse"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the catalog API client.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// BrowseConfig configures the interactive view.
type BrowseConfig struct {
	SearchDelay string `yaml:"search_delay"` // quiet window before a name search fires
	Theme       string `yaml:"theme"`        // auto, light, dark
}

const (
	defaultTimeout     = 15 * time.Second
	defaultSearchDelay = time.Second
)

// ValidThemes lists the accepted browse.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://rickandmortyapi.com/api",
			Timeout:   "15s",
			UserAgent: "rickdex/1.0",
		},
		Browse: BrowseConfig{
			SearchDelay: "1s",
			Theme:       "auto",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
			Format:    "json",
			File:      filepath.Join(defaultDir(), "rickdex.log"),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".rickdex"
	}
	return filepath.Join(dir, "rickdex")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RICKDEX_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("RICKDEX_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("RICKDEX_THEME"); v != "" {
		c.Browse.Theme = v
	}
	if v := os.Getenv("RICKDEX_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// GetTimeout returns the API timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// GetSearchDelay returns the name search debounce window.
func (c *Config) GetSearchDelay() time.Duration {
	d, err := time.ParseDuration(c.Browse.SearchDelay)
	if err != nil || d < 0 {
		return defaultSearchDelay
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid api.base_url: %q", c.API.BaseURL)
	}

	for _, t := range ValidThemes {
		if c.Browse.Theme == t {
			return nil
		}
	}
	return fmt.Errorf("invalid browse.theme: %s (valid: %v)", c.Browse.Theme, ValidThemes)
}
