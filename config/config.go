package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the server configuration
type Config struct {
	Server ServerConfig
	Box    BoxConfig
	Log    LogConfig
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// BoxConfig configures the geometry tool and the generated files
type BoxConfig struct {
	// Dir is where generated PDFs are written
	Dir string
	// Command is the tool invocation that precedes the output path and box arguments
	Command []string
	// Timeout bounds a single tool run
	Timeout time.Duration
	// ReclaimAge is how old a generated PDF must be before it is reclaimed
	ReclaimAge time.Duration
	// ReclaimSchedule is the cron spec for reclaiming. Empty disables the job.
	ReclaimSchedule string
}

// LogConfig configures logging
type LogConfig struct {
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// New creates a viper instance with defaults, environment bindings and the
// config file search path applied.
func New() *viper.Viper {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("box.dir", filepath.Join("tmp", "boxes"))
	v.SetDefault("box.command", []string{"java", "-cp", "BOX-v1.6.1.jar", "com.rahulbotics.boxmaker.CommandLine"})
	v.SetDefault("box.timeout", 60*time.Second)
	v.SetDefault("box.reclaim_age", 24*time.Hour)
	v.SetDefault("box.reclaim_schedule", "@every 1h")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.file", "boxmaker.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 10)

	// Environment variables
	v.SetEnvPrefix("boxmaker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("server.port", "BOXMAKER_SERVER_PORT", "PORT")
	v.BindEnv("log.debug", "BOXMAKER_LOG_DEBUG", "DEBUG")
	v.BindEnv("box.dir", "BOXMAKER_BOX_DIR", "BOX_DIR")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		filepath.Join(xdg.ConfigHome, "boxmaker"),
		"/etc/boxmaker",
	}
	for _, path := range configPaths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	return v
}

// Load reads the optional config file into v and decodes the result.
// A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Box: BoxConfig{
			Dir:             v.GetString("box.dir"),
			Command:         v.GetStringSlice("box.command"),
			Timeout:         v.GetDuration("box.timeout"),
			ReclaimAge:      v.GetDuration("box.reclaim_age"),
			ReclaimSchedule: strings.TrimSpace(v.GetString("box.reclaim_schedule")),
		},
		Log: LogConfig{
			Debug:      v.GetBool("log.debug"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Box.Dir == "" {
		return errors.New("box.dir must not be empty")
	}
	if len(c.Box.Command) == 0 || c.Box.Command[0] == "" {
		return errors.New("box.command must name an executable")
	}
	if c.Box.Timeout <= 0 {
		return fmt.Errorf("invalid box timeout: %s", c.Box.Timeout)
	}
	return nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. A missing file is ignored.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}
