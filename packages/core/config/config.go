package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/objkit/objkit/packages/core/env"
)

// Config represents the objkit CLI configuration
type Config struct {
	ServiceURL      string            `yaml:"service_url,omitempty"`
	Headers         map[string]string `yaml:"headers,omitempty"`
	TimeoutMs       int               `yaml:"timeout_ms,omitempty"`
	FollowRedirects *bool             `yaml:"follow_redirects,omitempty"`
	MaxRedirects    int               `yaml:"max_redirects,omitempty"`
	ValidateSSL     *bool             `yaml:"validate_ssl,omitempty"`
	Proxy           string            `yaml:"proxy,omitempty"`
	RequestIDs      *bool             `yaml:"request_ids,omitempty"`
	HistoryPath     string            `yaml:"history_path,omitempty"`
	NoColor         *bool             `yaml:"no_color,omitempty"`
	Verbose         *bool             `yaml:"verbose,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetRequestIDs returns the request id setting, defaulting to false
func (c *Config) GetRequestIDs() bool {
	return getBool(c.RequestIDs, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// Filename is the config file looked up in the working directory and $HOME.
const Filename = ".objkit.yaml"

// Load reads the config file from dir, falling back to $HOME, falling back
// to defaults. Values support ${VAR} expansion from the environment.
func Load(dir string) (*Config, error) {
	for _, candidate := range searchPaths(dir) {
		data, err := os.ReadFile(candidate)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", candidate, err)
		}
		return Parse(data)
	}
	return Default(), nil
}

// Parse decodes YAML config bytes and expands ${VAR} references.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ServiceURL = env.Resolve(cfg.ServiceURL)
	cfg.Proxy = env.Resolve(cfg.Proxy)
	cfg.HistoryPath = env.Resolve(cfg.HistoryPath)
	for k, v := range cfg.Headers {
		cfg.Headers[k] = env.Resolve(v)
	}

	return cfg, nil
}

func searchPaths(dir string) []string {
	paths := []string{filepath.Join(dir, Filename)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, Filename))
	}
	return paths
}
