package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for plotpal-ai.
// API credentials are deliberately not part of the file: they come from
// the environment (GEMINI_API_KEY, OPENROUTER_API_KEY, GROQ_API_KEY).
type Config struct {
	Data     DataConfig     `toml:"data"`
	Server   ServerConfig   `toml:"server"`
	Vision   VisionConfig   `toml:"vision"`
	Filter   FilterConfig   `toml:"filter"`
	Geocode  GeocodeConfig  `toml:"geocode"`
	Overpass OverpassConfig `toml:"overpass"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type VisionConfig struct {
	Backend     string `toml:"backend"` // "gemini" or "openrouter"
	Model       string `toml:"model"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

type FilterConfig struct {
	Model       string `toml:"model"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

type GeocodeConfig struct {
	Endpoint  string  `toml:"endpoint"`
	UserAgent string  `toml:"user_agent"`
	RateLimit float64 `toml:"rate_limit"`
}

type OverpassConfig struct {
	Endpoint string `toml:"endpoint"`
	RadiusM  int    `toml:"radius_m"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:   DataConfig{Dir: "data"},
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Vision: VisionConfig{
			Backend:     "gemini",
			Model:       "gemini-2.0-flash",
			TimeoutSecs: 60,
		},
		Filter: FilterConfig{
			Model:       "llama-3.3-70b-versatile",
			TimeoutSecs: 45,
		},
		Geocode: GeocodeConfig{
			Endpoint:  "https://nominatim.openstreetmap.org/search",
			UserAgent: "plotpal-ai/1.0",
			RateLimit: 1.0,
		},
		Overpass: OverpassConfig{
			Endpoint: "https://overpass-api.de/api/interpreter",
			RadiusM:  1000,
		},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
