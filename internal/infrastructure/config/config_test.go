package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.AutoSave.Interval)
	assert.True(t, cfg.AutoSave.Enabled)
	assert.Equal(t, 10, cfg.Store.HistoryLimit)
	assert.Equal(t, 10, cfg.Store.BackupLimit)
	assert.Equal(t, "/rachef-uploads/", cfg.Uploads.PublicPrefix)
	assert.False(t, cfg.Database.Enabled)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.internal:4000")
	t.Setenv("AUTOSAVE_INTERVAL", "5s")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_HISTORY_LIMIT", "20")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://backend.internal:4000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.AutoSave.Interval)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Store.HistoryLimit)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sitecms.yaml")
	require.NoError(t, os.WriteFile(file, []byte("backend:\n  base_url: http://files:4000\nuploads:\n  max_size: 2048\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "http://files:4000", cfg.Backend.BaseURL)
	assert.Equal(t, int64(2048), cfg.Uploads.MaxSize)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Backend:  BackendConfig{BaseURL: "http://localhost:4000"},
			Store:    StoreConfig{HistoryLimit: 10, BackupLimit: 10},
			AutoSave: AutoSaveConfig{Enabled: true, Interval: time.Second},
			Uploads:  UploadsConfig{PublicPrefix: "/rachef-uploads/"},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"port":             func(c *Config) { c.Server.Port = 0 },
		"relative backend": func(c *Config) { c.Backend.BaseURL = "/api" },
		"autosave":         func(c *Config) { c.AutoSave.Interval = 0 },
		"history":          func(c *Config) { c.Store.HistoryLimit = 1 },
		"backups":          func(c *Config) { c.Store.BackupLimit = 0 },
		"prefix":           func(c *Config) { c.Uploads.PublicPrefix = "uploads" },
		"database":         func(c *Config) { c.Database = DatabaseConfig{Enabled: true} },
		"production auth":  func(c *Config) { c.App.Environment = "production" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
