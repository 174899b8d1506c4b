// Package config loads application configuration and pipeline description
// files. Application settings come from an optional YAML file overlaid with
// KRINOSEQ_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the application configuration.
type Config struct {
	Engine  EngineConfig  `koanf:"engine"`
	Storage StorageConfig `koanf:"storage"`
	Viewer  ViewerConfig  `koanf:"viewer"`
}

// EngineConfig locates the analysis engine and tunes the polling loop.
type EngineConfig struct {
	BaseURL      string        `koanf:"base_url"`
	PollInterval time.Duration `koanf:"poll_interval"`
	WaitTimeout  time.Duration `koanf:"wait_timeout"`
}

// StorageConfig locates the local run-history database.
type StorageConfig struct {
	Path string `koanf:"path"`
}

// ViewerConfig configures the local report viewer.
type ViewerConfig struct {
	Port int `koanf:"port"`
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables use the KRINOSEQ_ prefix with __ as the section
// separator, e.g. KRINOSEQ_ENGINE__BASE_URL.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("KRINOSEQ_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "KRINOSEQ_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Defaults
	if !k.Exists("engine.base_url") {
		k.Set("engine.base_url", "http://localhost:8000")
	}
	if !k.Exists("engine.poll_interval") {
		k.Set("engine.poll_interval", "2s")
	}
	if !k.Exists("engine.wait_timeout") {
		k.Set("engine.wait_timeout", "30m")
	}
	if !k.Exists("storage.path") {
		k.Set("storage.path", "./data/krinoseq.db")
	}
	if !k.Exists("viewer.port") {
		k.Set("viewer.port", 8090)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
