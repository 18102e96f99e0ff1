package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Holidays  HolidaysConfig  `mapstructure:"holidays"`
	Vacations VacationsConfig `mapstructure:"vacations"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// DataConfig points at the generated dataset artifacts
type DataConfig struct {
	HolidaysFile  string `mapstructure:"holidays_file"`
	VacationsFile string `mapstructure:"vacations_file"`
}

// HolidaysConfig represents the holiday generator range
type HolidaysConfig struct {
	FromYear   int `mapstructure:"from_year"`
	YearsAhead int `mapstructure:"years_ahead"` // counted from the current year
}

// VacationsConfig represents the school calendar feed
type VacationsConfig struct {
	SourceURL   string `mapstructure:"source_url"`
	HTTPTimeout string `mapstructure:"http_timeout"`
}

// CalendarConfig represents the civil calendar policy
type CalendarConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// ServerConfig represents the HTTP API
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // empty logs to the console
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.holidays_file", "public/holidays.json")
	v.SetDefault("data.vacations_file", "public/vacation-calendar.json")
	v.SetDefault("holidays.from_year", 2011)
	v.SetDefault("holidays.years_ahead", 10)
	v.SetDefault("vacations.source_url", "https://fr.ftp.opendatasoft.com/openscol/fr-en-calendrier-scolaire/Zone-B.ics")
	v.SetDefault("vacations.http_timeout", "30s")
	v.SetDefault("calendar.timezone", "Europe/Paris")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. A missing config file is not an
// error: defaults and WEEK_NUMBER_* environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.week-number")
		v.AddConfigPath("/etc/week-number")
	}

	// Read environment variables
	v.SetEnvPrefix("week_number")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.HolidaysFile == "" {
		return fmt.Errorf("data.holidays_file is required")
	}
	if c.Data.VacationsFile == "" {
		return fmt.Errorf("data.vacations_file is required")
	}

	if c.Holidays.FromYear <= 0 {
		return fmt.Errorf("holidays.from_year must be positive")
	}
	if c.Holidays.YearsAhead < 0 {
		return fmt.Errorf("holidays.years_ahead must not be negative")
	}

	if !strings.HasPrefix(c.Vacations.SourceURL, "http://") && !strings.HasPrefix(c.Vacations.SourceURL, "https://") {
		return fmt.Errorf("vacations.source_url must be an http(s) URL, got '%s'", c.Vacations.SourceURL)
	}

	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}

	return nil
}

// GetHTTPTimeout returns the feed download timeout
func (c *VacationsConfig) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// GetLocation returns the civil calendar zone
func (c *CalendarConfig) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetToYear returns the last year the holiday generator covers
func (c *HolidaysConfig) GetToYear(now time.Time) int {
	return now.Year() + c.YearsAhead
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Data.HolidaysFile = os.ExpandEnv(c.Data.HolidaysFile)
	c.Data.VacationsFile = os.ExpandEnv(c.Data.VacationsFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
