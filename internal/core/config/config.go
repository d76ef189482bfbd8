// Package config handles configuration loading and validation for taskdeck.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the local json-server style resource API.
const DefaultAPIURL = "http://localhost:3001"

// Config holds the application configuration.
type Config struct {
	// APIURL is the base URL of the mock resource API used for auth and
	// optional task sync.
	APIURL string `yaml:"api_url"`
	// Theme is the default palette (light or dark) used until the user
	// persists a preference.
	Theme string `yaml:"theme"`
	// DataDir is set by the caller from flags, not from the config file.
	DataDir string `yaml:"-"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		APIURL: DefaultAPIURL,
	}
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not a valid absolute URL", c.APIURL)
	}
	switch c.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme %q must be light or dark", c.Theme)
	}
	return nil
}
