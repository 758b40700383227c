// Package config loads crmcal settings. CRMCAL_* environment variables
// override the YAML file, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CRMCAL_SERVER_LISTEN for server.listen.
const EnvPrefix = "CRMCAL"

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig represents the HTTP listener
type ServerConfig struct {
	Listen         string   `mapstructure:"listen"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      float64  `mapstructure:"rate_limit"` // requests/second per client, 0 = off
	RateBurst      int      `mapstructure:"rate_burst"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"` // empty logs to stderr
}

// CalendarConfig represents how month grids are rendered
type CalendarConfig struct {
	Timezone   string `mapstructure:"timezone"`    // IANA name used for "today"
	WeekStart  string `mapstructure:"week_start"`  // sunday or monday
	DisplayCap int    `mapstructure:"display_cap"` // interviews shown per day, 0 = all
}

// SeedConfig represents the mock data source
type SeedConfig struct {
	File          string `mapstructure:"file"`           // empty uses the embedded seed
	ResetSchedule string `mapstructure:"reset_schedule"` // cron spec, empty = never
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Listen:         ":8080",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:      5,
			RateBurst:      30,
		},
		Log:      LogConfig{Level: "info"},
		Calendar: CalendarConfig{Timezone: "UTC", WeekStart: "sunday", DisplayCap: 2},
	}
}

// Load loads configuration. configPath may be empty, in which case
// config.yaml is looked up in the working directory and skipped if absent.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.crmcal")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFile exports the KEY=VALUE pairs in path into the process
// environment so Load picks them up as CRMCAL_* overrides. Variables that
// are already set win. A missing file is an error only when required.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.rate_burst", d.Server.RateBurst)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("calendar.timezone", d.Calendar.Timezone)
	v.SetDefault("calendar.week_start", d.Calendar.WeekStart)
	v.SetDefault("calendar.display_cap", d.Calendar.DisplayCap)
	v.SetDefault("seed.file", d.Seed.File)
	v.SetDefault("seed.reset_schedule", d.Seed.ResetSchedule)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be at least 1 when rate limiting, got %d", c.Server.RateBurst)
	}
	if c.Seed.ResetSchedule != "" {
		if _, err := cron.ParseStandard(c.Seed.ResetSchedule); err != nil {
			return fmt.Errorf("seed.reset_schedule: %w", err)
		}
	}
	if _, err := c.Calendar.Location(); err != nil {
		return err
	}
	if _, err := c.Calendar.FirstWeekday(); err != nil {
		return err
	}
	if c.Calendar.DisplayCap < 0 {
		return fmt.Errorf("calendar.display_cap must not be negative, got %d", c.Calendar.DisplayCap)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}
	return nil
}

// Location returns the configured time zone.
func (c *CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	return loc, nil
}

// FirstWeekday returns the grid's first column.
func (c *CalendarConfig) FirstWeekday() (time.Weekday, error) {
	switch strings.ToLower(c.WeekStart) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("calendar.week_start must be 'sunday' or 'monday', got '%s'", c.WeekStart)
	}
}
