// Package config loads runtime settings for the dashboard.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// WC_* environment variables, then command-line flags that were set
// explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/wc-dashboard/internal/scraper"
)

const (
	envPort      = "WC_PORT"
	envSourceURL = "WC_SOURCE_URL"
	envLogLevel  = "WC_LOG_LEVEL"

	defaultPort            = "8054"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// Flag names read by ApplyFlags
const (
	FlagPort      = "port"
	FlagSourceURL = "source-url"
	FlagVerbose   = "verbose"
)

// Config holds runtime configuration
type Config struct {
	Port            string
	SourceURL       string
	TableIndex      int
	UserAgent       string
	FetchTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
}

// fileConfig mirrors the YAML layout. Durations are strings such as "30s".
type fileConfig struct {
	Port            string `yaml:"port"`
	SourceURL       string `yaml:"source_url"`
	TableIndex      *int   `yaml:"table_index"`
	UserAgent       string `yaml:"user_agent"`
	FetchTimeout    string `yaml:"fetch_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:            defaultPort,
		SourceURL:       scraper.FinalsURL,
		TableIndex:      scraper.DefaultTableIndex,
		UserAgent:       scraper.UserAgent,
		FetchTimeout:    scraper.Timeout,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        defaultLogLevel,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.SourceURL != "" {
		c.SourceURL = fc.SourceURL
	}
	if fc.TableIndex != nil {
		c.TableIndex = *fc.TableIndex
	}
	if fc.UserAgent != "" {
		c.UserAgent = fc.UserAgent
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.FetchTimeout != "" {
		d, err := time.ParseDuration(fc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout: %w", err)
		}
		c.FetchTimeout = d
	}
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout: %w", err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = envOrDefault(envPort, c.Port)
	c.SourceURL = envOrDefault(envSourceURL, c.SourceURL)
	c.LogLevel = envOrDefault(envLogLevel, c.LogLevel)
}

// ApplyFlags overrides fields with flags the user set explicitly. Flags that
// are missing from fs are ignored, so commands only need to define the ones
// they accept.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	if changed(fs, FlagPort) {
		port, err := fs.GetString(FlagPort)
		if err != nil {
			return err
		}
		c.Port = port
	}
	if changed(fs, FlagSourceURL) {
		url, err := fs.GetString(FlagSourceURL)
		if err != nil {
			return err
		}
		c.SourceURL = url
	}
	if changed(fs, FlagVerbose) {
		verbose, err := fs.GetBool(FlagVerbose)
		if err != nil {
			return err
		}
		if verbose {
			c.LogLevel = "debug"
		}
	}
	return nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is required")
	}
	if strings.TrimSpace(c.SourceURL) == "" {
		return errors.New("source URL is required")
	}
	if c.TableIndex < 0 {
		return fmt.Errorf("table index must not be negative, got %d", c.TableIndex)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Scraper returns the scraper settings
func (c Config) Scraper() scraper.Config {
	return scraper.Config{
		URL:        c.SourceURL,
		UserAgent:  c.UserAgent,
		Timeout:    c.FetchTimeout,
		TableIndex: c.TableIndex,
	}
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func changed(fs *pflag.FlagSet, name string) bool {
	if fs == nil {
		return false
	}
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
