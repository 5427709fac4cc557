package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/username/weekcal/pkg/isoweek"
)

// EnvPrefix prefixes environment overrides, e.g. WEEKCAL_CALENDAR_WEEK_START
const EnvPrefix = "WEEKCAL"

const (
	defaultCheckInterval = time.Minute
	defaultAPITimeout    = 30 * time.Second
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	API      APIConfig      `mapstructure:"api"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
}

// CalendarConfig represents week numbering preferences
type CalendarConfig struct {
	WeekStart string `mapstructure:"week_start"` // "monday" or "sunday", only affects month spans
	Timezone  string `mapstructure:"timezone"`   // IANA name, empty means local time
}

// OutputConfig represents CLI output settings
type OutputConfig struct {
	Format string `mapstructure:"format"` // "text", "json" or "yaml"
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StoreConfig represents preference storage configuration
type StoreConfig struct {
	Type          string `mapstructure:"type"` // "file", "memory" or "redis"
	Path          string `mapstructure:"path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

// APIConfig represents the remote API used by fetch
type APIConfig struct {
	Server  string `mapstructure:"server"` // Used when no server is stored in preferences
	Timeout string `mapstructure:"timeout"`
}

// DaemonConfig represents week watcher configuration
type DaemonConfig struct {
	CheckInterval string `mapstructure:"check_interval"`
	SystemTray    bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.week_start", "monday")
	v.SetDefault("calendar.timezone", "")
	v.SetDefault("output.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("store.type", "file")
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.key_prefix", "weekcal:")
	v.SetDefault("api.server", "")
	v.SetDefault("api.timeout", defaultAPITimeout.String())
	v.SetDefault("daemon.check_interval", defaultCheckInterval.String())
	v.SetDefault("daemon.system_tray", true)
}

// Load loads configuration from file. With an empty path the usual locations
// are searched and a missing file leaves the defaults in place.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.weekcal")
		v.AddConfigPath("/etc/weekcal")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := isoweek.ParseWeekStart(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("calendar.week_start: %w", err)
	}
	if c.Calendar.Timezone != "" {
		if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
			return fmt.Errorf("calendar.timezone: %w", err)
		}
	}

	switch c.Output.Format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be 'text', 'json' or 'yaml', got '%s'", c.Output.Format)
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	switch c.Store.Type {
	case "", "file", "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for redis type")
		}
		if c.Store.RedisDB < 0 {
			return fmt.Errorf("store.redis_db must not be negative")
		}
	default:
		return fmt.Errorf("store.type must be 'file', 'memory' or 'redis', got '%s'", c.Store.Type)
	}

	if err := validateDuration("api.timeout", c.API.Timeout); err != nil {
		return err
	}
	if err := validateDuration("daemon.check_interval", c.Daemon.CheckInterval); err != nil {
		return err
	}

	return nil
}

func validateDuration(key, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return nil
}

// GetWeekStart returns the configured first day of month spans
func (c *CalendarConfig) GetWeekStart() isoweek.WeekStart {
	ws, err := isoweek.ParseWeekStart(c.WeekStart)
	if err != nil {
		return isoweek.Monday
	}
	return ws
}

// GetLocation returns the configured timezone, falling back to local time
func (c *CalendarConfig) GetLocation() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetPath returns the preference file location
func (c *StoreConfig) GetPath() string {
	if c.Path != "" {
		return c.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "preferences.json"
	}
	return filepath.Join(home, ".weekcal", "preferences.json")
}

// GetTimeout returns the HTTP timeout for API requests
func (c *APIConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, defaultAPITimeout)
}

// GetCheckInterval returns daemon check interval duration
func (c *DaemonConfig) GetCheckInterval() time.Duration {
	return parseDurationOr(c.CheckInterval, defaultCheckInterval)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.API.Server = os.ExpandEnv(c.API.Server)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.Store.RedisPassword = os.ExpandEnv(c.Store.RedisPassword)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
