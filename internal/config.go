package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// configEnvVar overrides the config file location.
	configEnvVar = "FLIGHTDATA_CONFIG"
	// configFileName is looked up in the working directory, then in the
	// user's home directory.
	configFileName = ".flightdata.json"

	// Individual values can be overridden through ADS-B Exchange
	// environment variables, which always win over the file.
	apiKeyEnvVar      = "ADSB_EXCHANGE_API_KEY"
	useRapidAPIEnvVar = "ADSB_EXCHANGE_USE_RAPID_API"
)

// Config carries the client credentials and the default spotting location.
type Config struct {
	APIKey           string  `json:"api_key"`
	UseRapidAPI      bool    `json:"use_rapid_api"`
	DefaultRadiusKm  float64 `json:"default_radius_km"`
	DefaultCenterLat float64 `json:"default_center_lat"`
	DefaultCenterLon float64 `json:"default_center_lon"`
}

// DefaultCenter returns the configured spotting location.
func (c *Config) DefaultCenter() Coordinates {
	return NewCoordinates(c.DefaultCenterLat, c.DefaultCenterLon)
}

// LoadConfig reads the configuration from the first file found in the
// standard locations and applies environment overrides. A missing file is
// not an error; the zero config with overrides applied is returned instead.
func LoadConfig() (Config, error) {
	var cfg Config

	if path := findConfigFile(); path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(configEnvVar); path != "" {
		return path
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, configFileName)
		if _, statErr := os.Stat(homePath); statErr == nil {
			return homePath
		}
	}

	return ""
}

func loadConfigFile(path string) (Config, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return Config{}, fmt.Errorf("loadConfigFile: failed to read %s: %w", path, readErr)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("loadConfigFile: failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv(apiKeyEnvVar); key != "" {
		cfg.APIKey = key
	}

	if val := os.Getenv(useRapidAPIEnvVar); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			cfg.UseRapidAPI = true
		default:
			cfg.UseRapidAPI = false
		}
	}
}

// SaveTemplate writes a starter configuration to the given path, for the
// user to fill in.
func SaveTemplate(path string) error {
	template := Config{
		APIKey:           "your-rapidapi-key-here",
		UseRapidAPI:      false,
		DefaultRadiusKm:  100,
		DefaultCenterLat: 37.7749,
		DefaultCenterLon: -122.4194,
	}

	data, marshalErr := json.MarshalIndent(template, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("saveTemplate: failed to marshal template: %w", marshalErr)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("saveTemplate: failed to write %s: %w", path, err)
	}

	return nil
}
