package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RICKDEX_API_URL", "RICKDEX_TIMEOUT", "RICKDEX_THEME", "RICKDEX_DEBUG"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.API.BaseURL != "https://rickandmortyapi.com/api" {
		t.Errorf("expected default base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.GetSearchDelay() != time.Second {
		t.Errorf("expected 1s search delay, got %s", cfg.GetSearchDelay())
	}
	if cfg.Logging.DebugMode {
		t.Error("expected logging disabled by default")
	}
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://localhost:9999/api"
	cfg.Browse.Theme = "dark"
	cfg.Logging.Categories = map[string]bool{"ui": false}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api", loaded.API.BaseURL)
	assert.Equal(t, "dark", loaded.Browse.Theme)
	assert.Equal(t, map[string]bool{"ui": false}, loaded.Logging.Categories)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browse:\n  search_delay: 250ms\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.GetSearchDelay())
	assert.Equal(t, "https://rickandmortyapi.com/api", cfg.API.BaseURL)
	assert.Equal(t, "auto", cfg.Browse.Theme)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RICKDEX_API_URL", "http://api.test")
	t.Setenv("RICKDEX_TIMEOUT", "3s")
	t.Setenv("RICKDEX_THEME", "light")
	t.Setenv("RICKDEX_DEBUG", "true")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "http://api.test", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.GetTimeout())
	assert.Equal(t, "light", cfg.Browse.Theme)
	assert.True(t, cfg.Logging.DebugMode)

	t.Run("unparseable debug flag is ignored", func(t *testing.T) {
		t.Setenv("RICKDEX_DEBUG", "maybe")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Logging.DebugMode)
	})
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = "soon"
	cfg.Browse.SearchDelay = "-5s"

	assert.Equal(t, defaultTimeout, cfg.GetTimeout())
	assert.Equal(t, defaultSearchDelay, cfg.GetSearchDelay())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"missing scheme", func(c *Config) { c.API.BaseURL = "rickandmortyapi.com/api" }, true},
		{"ftp scheme", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, true},
		{"unknown theme", func(c *Config) { c.Browse.Theme = "neon" }, true},
		{"dark theme", func(c *Config) { c.Browse.Theme = "dark" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	assert.False(t, c.IsCategoryEnabled("api"))

	c.DebugMode = true
	assert.True(t, c.IsCategoryEnabled("api"))

	c.Categories = map[string]bool{"api": false}
	assert.False(t, c.IsCategoryEnabled("api"))
	assert.True(t, c.IsCategoryEnabled("ui"))
}
