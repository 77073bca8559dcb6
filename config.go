package urbandash

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration for an urbandash server.
type Config struct {
	Name   string `mapstructure:"name"`   // Site name (default "Dashboard de Datos Urbanos")
	URL    string `mapstructure:"url"`    // Canonical URL (default "http://localhost:3000")
	Footer string `mapstructure:"footer"` // Sidebar credit line

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	AssetRoot    string `mapstructure:"asset_root"`    // Directory holding the charts (default "images")
	ManifestPath string `mapstructure:"manifest_path"` // Optional YAML manifest; built-in when empty

	SessionSecret string `mapstructure:"session_secret"` // Random per process when empty
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	StatsEnabled       bool   `mapstructure:"stats_enabled"`        // Record page views (default false)
	StatsDatabasePath  string `mapstructure:"stats_database_path"`  // SQLite path (default "data/stats.db")
	StatsRetentionDays int    `mapstructure:"stats_retention_days"` // default 365

	WatchAssets   bool          `mapstructure:"watch_assets"`    // Log asset changes and drop stale thumbnails
	ThumbCacheTTL time.Duration `mapstructure:"thumb_cache_ttl"` // default 10min
	ThumbMaxWidth int           `mapstructure:"thumb_max_width"` // default 1600

	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn, error (default "info")
	LogFormat string `mapstructure:"log_format"` // json or console (default "json")

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // default 10s
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Dashboard de Datos Urbanos"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Footer == "" {
		c.Footer = "Desarrollado en Go"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AssetRoot == "" {
		c.AssetRoot = "images"
	}
	if c.StatsDatabasePath == "" {
		c.StatsDatabasePath = "data/stats.db"
	}
	if c.StatsRetentionDays == 0 {
		c.StatsRetentionDays = 365
	}
	if c.ThumbCacheTTL == 0 {
		c.ThumbCacheTTL = 10 * time.Minute
	}
	if c.ThumbMaxWidth == 0 {
		c.ThumbMaxWidth = 1600
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// LoadConfig reads configuration from an optional file and URBANDASH_*
// environment variables. Env vars win over the file.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	var defaults Config
	defaults.setDefaults()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("url", defaults.URL)
	v.SetDefault("footer", defaults.Footer)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("asset_root", defaults.AssetRoot)
	v.SetDefault("manifest_path", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("stats_enabled", false)
	v.SetDefault("stats_database_path", defaults.StatsDatabasePath)
	v.SetDefault("stats_retention_days", defaults.StatsRetentionDays)
	v.SetDefault("watch_assets", false)
	v.SetDefault("thumb_cache_ttl", defaults.ThumbCacheTTL)
	v.SetDefault("thumb_max_width", defaults.ThumbMaxWidth)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	v.SetEnvPrefix("URBANDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("urbandash: read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("urbandash: unmarshal config: %w", err)
	}
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.ThumbMaxWidth < 0 {
		return errors.New("urbandash: thumb_max_width must not be negative")
	}
	if c.StatsRetentionDays < 0 {
		return errors.New("urbandash: stats_retention_days must not be negative")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("urbandash: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the logger built from Config.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithViews overrides the default templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
