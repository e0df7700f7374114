// Package config loads recipecard settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gaurav-prasanna/recipecard/core/fetch"
	"github.com/gaurav-prasanna/recipecard/core/locate"
	"github.com/gaurav-prasanna/recipecard/crawl"
	"github.com/gaurav-prasanna/recipecard/logging"
)

// Prefix is prepended to every environment variable name.
const Prefix = "RECIPECARD"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	Locator LocatorConfig
	Crawl   CrawlConfig
	Logging LogConfig
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8080"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// FetchConfig holds page fetching configuration.
type FetchConfig struct {
	Timeout      time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
	UserAgent    string        `envconfig:"USER_AGENT"`
	MaxBodyBytes int64         `envconfig:"MAX_BODY_BYTES" default:"5242880"`
}

// Options converts the config to fetcher options.
func (f FetchConfig) Options() fetch.Options {
	return fetch.Options{Timeout: f.Timeout, UserAgent: f.UserAgent, MaxBytes: f.MaxBodyBytes}
}

// LocatorConfig bounds the JSON-LD search.
type LocatorConfig struct {
	MaxDepth int `envconfig:"MAX_DEPTH" default:"32"`
}

// CrawlConfig holds batch discovery configuration.
type CrawlConfig struct {
	Limit int `envconfig:"CRAWL_LIMIT" default:"100"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Logger converts the config to logger options.
func (l LogConfig) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Development = l.Development
	return cfg
}

// Load reads an optional .env file, then RECIPECARD_* environment variables.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	// Sections are processed one by one so keys stay RECIPECARD_<NAME>
	// without the section name in between.
	var cfg Config
	for _, section := range []any{&cfg.Server, &cfg.Fetch, &cfg.Locator, &cfg.Crawl, &cfg.Logging} {
		if err := envconfig.Process(Prefix, section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = fetch.DefaultUserAgent
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Fetch: FetchConfig{
			Timeout:      fetch.DefaultTimeout,
			UserAgent:    fetch.DefaultUserAgent,
			MaxBodyBytes: fetch.DefaultMaxBytes,
		},
		Locator: LocatorConfig{MaxDepth: locate.DefaultMaxDepth},
		Crawl:   CrawlConfig{Limit: crawl.DefaultLimit},
		Logging: LogConfig{Level: "info"},
	}
}
