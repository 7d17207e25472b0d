package config

import (
	"os"
	"strconv"
	"strings"

	"surveyreport/internal/errors"
)

// Config holds the settings for one report run. The input path itself is a
// CLI argument; everything here is ambient and has a working default.
type Config struct {
	// SheetName is the worksheet read from XLSX inputs.
	SheetName string
	// JuvenileCode is the age code that marks a record as juvenile.
	JuvenileCode string
	// Alpha is the significance level used when wording the narrative.
	Alpha float64
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		SheetName:    getEnvOrDefault("SHEET_NAME", "Sheet1"),
		JuvenileCode: strings.ToLower(getEnvOrDefault("JUVENILE_AGE_CODE", "j")),
		Alpha:        getEnvFloatOrDefault("ALPHA", 0.05),
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SheetName == "" {
		return errors.ConfigInvalid("sheet name must not be empty")
	}
	if cfg.JuvenileCode == "" {
		return errors.ConfigInvalid("juvenile age code must not be empty")
	}
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		return errors.ConfigInvalid("alpha must be in (0, 1)")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
