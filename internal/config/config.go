// Package config holds the runtime knobs: search/release timeouts, the
// HTTP fetch policy, browser settings and extra synonym entries.
package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Search struct {
		ProviderTimeoutSeconds int `yaml:"provider_timeout_seconds"`
		ReleaseTimeoutSeconds  int `yaml:"release_timeout_seconds"`
	} `yaml:"search"`

	Fetch struct {
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
		Retries               int     `yaml:"retries"`
		HostRatePerSecond     float64 `yaml:"host_rate_per_second"`
		HostBurst             int     `yaml:"host_burst"`
	} `yaml:"fetch"`

	Browser struct {
		Headless bool   `yaml:"headless"`
		DataDir  string `yaml:"data_dir"`
	} `yaml:"browser"`

	// Extra synonym entries merged over the built-in table.
	Synonyms map[string][]string `yaml:"synonyms"`
}

func Default() Config {
	var cfg Config
	cfg.Search.ProviderTimeoutSeconds = 60
	cfg.Search.ReleaseTimeoutSeconds = 5
	cfg.Fetch.RequestTimeoutSeconds = 30
	cfg.Fetch.Retries = 3
	cfg.Fetch.HostRatePerSecond = 0.5
	cfg.Fetch.HostBurst = 1
	cfg.Browser.Headless = true
	return cfg
}

// Load reads a yaml config over the defaults. An empty path or a missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Search.ProviderTimeoutSeconds) * time.Second
}

func (c Config) ReleaseTimeout() time.Duration {
	return time.Duration(c.Search.ReleaseTimeoutSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Fetch.RequestTimeoutSeconds) * time.Second
}
