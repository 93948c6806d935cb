package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/dnd"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	configDir := filepath.Join(dir, "embudo")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	path := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.MoveItemLeft != "H" || defaults.MoveItemRight != "L" {
		t.Errorf("Default move keys = %s/%s, want H/L", defaults.MoveItemLeft, defaults.MoveItemRight)
	}
	if defaults.DeleteColumn != "D" {
		t.Errorf("Default DeleteColumn key = %s, want D", defaults.DeleteColumn)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvDBPath, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, dnd.DefaultGestureConfig(), cfg.Gesture())
	assert.Equal(t, dnd.RollbackCompensate, cfg.Rollback())
	assert.Equal(t, DefaultNotificationTTL, cfg.NotificationTTL())
	assert.Equal(t, DefaultCommandTimeout, cfg.CommandTimeout())
	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
}

func TestLoadConfigWithFile(t *testing.T) {
	writeConfig(t, `drag:
  activation_distance: 0
  activation_delay_ms: 250
  rollback: reload
notifications:
  ttl_ms: 1500
database:
  path: /tmp/boards.db
key_mappings:
  quit: "x"
  add_item: "a"
theme:
  preset: monochrome
  accent: "#FF0000"
`)
	t.Setenv(EnvDBPath, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dnd.GestureConfig{ActivationDistance: 0, ActivationDelay: 250 * time.Millisecond}, cfg.Gesture())
	assert.Equal(t, dnd.RollbackReload, cfg.Rollback())
	assert.Equal(t, 1500*time.Millisecond, cfg.NotificationTTL())
	assert.Equal(t, DefaultCommandTimeout, cfg.CommandTimeout())
	assert.Equal(t, "/tmp/boards.db", cfg.Database.Path)

	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "a", cfg.KeyMappings.AddItem)
	assert.Equal(t, "e", cfg.KeyMappings.EditItem, "unspecified keys keep their default")

	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, MonochromeColorScheme().ColumnBorder, cfg.ColorScheme.ColumnBorder)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	writeConfig(t, "database:\n  path: /from/file.db\n")
	t.Setenv(EnvDBPath, "/from/env.db")

	themeFile := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(themeFile, []byte("theme:\n  accent: \"#00FF00\"\n"), 0o644))
	t.Setenv(EnvThemeFile, themeFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Database.Path)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.Accent)
	assert.NotEmpty(t, cfg.ColorScheme.Delete)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown rollback", "drag:\n  rollback: undo\n"},
		{"negative distance", "drag:\n  activation_distance: -1\n"},
		{"negative delay", "drag:\n  activation_delay_ms: -5\n"},
		{"bad yaml", "drag: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv(EnvDBPath, "")

	cfg := Default()
	cfg.KeyMappings.Quit = "x"
	cfg.Drag.Rollback = "reload"

	require.NoError(t, cfg.Save())
	_, err := os.Stat(filepath.Join(tempDir, "embudo", "config.yaml"))
	require.NoError(t, err)

	cfg2, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "x", cfg2.KeyMappings.Quit)
	assert.Equal(t, dnd.RollbackReload, cfg2.Rollback())
}
