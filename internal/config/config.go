package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/embudo/internal/dnd"
)

// Environment overrides.
const (
	EnvDBPath    = "EMBUDO_DB_PATH"
	EnvThemeFile = "EMBUDO_THEME_FILE"
)

// Defaults for unset keys.
const (
	DefaultNotificationTTL = 3 * time.Second
	DefaultCommandTimeout  = 10 * time.Second
)

// Config represents the application configuration
type Config struct {
	Drag          DragConfig         `yaml:"drag"`
	Notifications NotificationConfig `yaml:"notifications"`
	Commands      CommandConfig      `yaml:"commands"`
	Database      DatabaseConfig     `yaml:"database"`
	KeyMappings   KeyMappings        `yaml:"key_mappings"`
	ColorScheme   ColorScheme        `yaml:"theme"`
}

// DragConfig tunes the pointer gesture and move rollback. Thresholds are
// pointers so an explicit 0 survives defaulting.
type DragConfig struct {
	ActivationDistance *float64 `yaml:"activation_distance,omitempty"`
	ActivationDelayMs  *int     `yaml:"activation_delay_ms,omitempty"`
	Rollback           string   `yaml:"rollback,omitempty"` // compensate | reload
}

// NotificationConfig controls how long toasts stay on screen.
type NotificationConfig struct {
	TTLMs int `yaml:"ttl_ms,omitempty"`
}

// CommandConfig bounds every remote command issued by the board.
type CommandConfig struct {
	TimeoutMs int `yaml:"timeout_ms,omitempty"`
}

// DatabaseConfig locates the sqlite file. Empty means ~/.embudo/embudo.db.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile merges the theme from EMBUDO_THEME_FILE over the config
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme, true)
	}
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// no home directory, run on defaults
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the config at path, falling back to defaults when the
// file does not exist.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	loadThemeFile(&cfg)
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects values the board cannot run with.
func (c *Config) Validate() error {
	if _, err := dnd.ParseRollbackStrategy(c.Drag.Rollback); err != nil {
		return fmt.Errorf("drag.rollback: %w", err)
	}
	if c.Drag.ActivationDistance != nil && *c.Drag.ActivationDistance < 0 {
		return fmt.Errorf("drag.activation_distance must be >= 0")
	}
	if c.Drag.ActivationDelayMs != nil && *c.Drag.ActivationDelayMs < 0 {
		return fmt.Errorf("drag.activation_delay_ms must be >= 0")
	}
	return nil
}

// Gesture returns the activation thresholds for the board.
func (c *Config) Gesture() dnd.GestureConfig {
	g := dnd.DefaultGestureConfig()
	if c.Drag.ActivationDistance != nil {
		g.ActivationDistance = *c.Drag.ActivationDistance
	}
	if c.Drag.ActivationDelayMs != nil {
		g.ActivationDelay = time.Duration(*c.Drag.ActivationDelayMs) * time.Millisecond
	}
	return g
}

// Rollback returns the configured rollback strategy. Validate has already
// rejected unknown values.
func (c *Config) Rollback() dnd.RollbackStrategy {
	r, _ := dnd.ParseRollbackStrategy(c.Drag.Rollback)
	return r
}

// NotificationTTL is how long a toast stays visible.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.Notifications.TTLMs) * time.Millisecond
}

// CommandTimeout bounds each remote command.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Commands.TimeoutMs) * time.Millisecond
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "embudo", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "embudo", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Drag.Rollback == "" {
		c.Drag.Rollback = dnd.RollbackCompensate.String()
	}
	if c.Notifications.TTLMs <= 0 {
		c.Notifications.TTLMs = int(DefaultNotificationTTL / time.Millisecond)
	}
	if c.Commands.TimeoutMs <= 0 {
		c.Commands.TimeoutMs = int(DefaultCommandTimeout / time.Millisecond)
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

func (c *Config) applyEnv() {
	if path := os.Getenv(EnvDBPath); path != "" {
		c.Database.Path = path
	}
}
