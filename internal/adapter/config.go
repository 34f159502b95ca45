package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "holonet"

// ListPageSize is the fixed page size of the catalog API. List tables page
// through server pages, so their rows per page must match it.
const ListPageSize = 10

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // per request, also bounds UI commands
}

// CacheConfig holds in-memory cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	RowsPerPage        int    `mapstructure:"rows_per_page"`
	RelatedRowsPerPage int    `mapstructure:"related_rows_per_page"`
	Locale             string `mapstructure:"locale"` // empty: saved choice, then $LANG
}

// SessionConfig holds the session database location
type SessionConfig struct {
	Path string `mapstructure:"path"` // empty disables persistence
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// MetricsConfig holds the optional prometheus listener
type MetricsConfig struct {
	Listen string `mapstructure:"listen"` // e.g. "127.0.0.1:9464"; empty disables
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://swapi-api.hbtn.io/api",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		UI: UIConfig{
			RowsPerPage:        ListPageSize,
			RelatedRowsPerPage: 5,
		},
		Session: SessionConfig{
			Path: filepath.Join(defaultDataPath(), "session.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "holonet.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// newViper returns a viper instance with defaults and env overrides
// (HOLONET_API_BASE_URL, HOLONET_UI_LOCALE, ...).
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("ui.rows_per_page", d.UI.RowsPerPage)
	v.SetDefault("ui.related_rows_per_page", d.UI.RelatedRowsPerPage)
	v.SetDefault("ui.locale", d.UI.Locale)
	v.SetDefault("session.path", d.Session.Path)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("metrics.listen", d.Metrics.Listen)

	v.SetEnvPrefix("HOLONET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config dir and the working directory;
// a missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.UI.RowsPerPage != ListPageSize {
		return fmt.Errorf("ui.rows_per_page must be %d, the catalog API page size, got %d", ListPageSize, c.UI.RowsPerPage)
	}
	if c.UI.RelatedRowsPerPage <= 0 {
		return fmt.Errorf("ui.related_rows_per_page must be positive, got %d", c.UI.RelatedRowsPerPage)
	}
	return nil
}

// SaveConfig writes cfg as YAML to path, or to the default config dir when
// path is empty.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("cache.ttl", cfg.Cache.TTL.String())
	v.Set("ui.rows_per_page", cfg.UI.RowsPerPage)
	v.Set("ui.related_rows_per_page", cfg.UI.RelatedRowsPerPage)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("session.path", cfg.Session.Path)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("metrics.listen", cfg.Metrics.Listen)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
