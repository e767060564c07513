package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for an audit run
type Config struct {
	Files Files
	Log   LogConfig
}

// Files names the dataset files inside the audit directory. They are
// configuration rather than package globals so that audits over differently
// named datasets can run side by side.
type Files struct {
	Daycycle    string
	Weather     string
	Minimums    string
	Students    string
	Instructors string
	Fleet       string
	Lessons     string
	Repairs     string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults (the standard dataset layout)
	v.SetDefault("files.daycycle", "daycycle.json")
	v.SetDefault("files.weather", "weather.json")
	v.SetDefault("files.minimums", "minimums.csv")
	v.SetDefault("files.students", "students.csv")
	v.SetDefault("files.instructors", "instructors.csv")
	v.SetDefault("files.fleet", "fleet.csv")
	v.SetDefault("files.lessons", "lessons.csv")
	v.SetDefault("files.repairs", "repairs.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Set config file name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Set config file search paths
	v.AddConfigPath("/etc/skyaudit")
	v.AddConfigPath(".")

	// Check for config file path from environment variable
	if configPath := os.Getenv("SKYAUDIT_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	// Set environment variable prefix
	v.SetEnvPrefix("SKYAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		Files: Files{
			Daycycle:    v.GetString("files.daycycle"),
			Weather:     v.GetString("files.weather"),
			Minimums:    v.GetString("files.minimums"),
			Students:    v.GetString("files.students"),
			Instructors: v.GetString("files.instructors"),
			Fleet:       v.GetString("files.fleet"),
			Lessons:     v.GetString("files.lessons"),
			Repairs:     v.GetString("files.repairs"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	names := map[string]string{
		"files.daycycle":    cfg.Files.Daycycle,
		"files.weather":     cfg.Files.Weather,
		"files.minimums":    cfg.Files.Minimums,
		"files.students":    cfg.Files.Students,
		"files.instructors": cfg.Files.Instructors,
		"files.fleet":       cfg.Files.Fleet,
		"files.lessons":     cfg.Files.Lessons,
		"files.repairs":     cfg.Files.Repairs,
	}
	for key, name := range names {
		if name == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
