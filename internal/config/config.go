// Package config loads runtime configuration from the environment.
// All fields have defaults so the server runs locally without any setup.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	// Provider
	StatsBaseURL string        `env:"NBA_STATS_BASE_URL" envDefault:"https://stats.nba.com/stats"`
	LiveBaseURL  string        `env:"NBA_LIVE_BASE_URL"  envDefault:"https://cdn.nba.com/static/json/liveData"`
	HTTPTimeout  time.Duration `env:"NBA_HTTP_TIMEOUT"   envDefault:"30s"`
	UserAgent    string        `env:"NBA_USER_AGENT"`

	// MCP host
	Transport   string   `env:"NBA_MCP_TRANSPORT"    envDefault:"stdio"`
	Addr        string   `env:"NBA_MCP_ADDR"         envDefault:":8080"`
	Path        string   `env:"NBA_MCP_PATH"         envDefault:"/mcp"`
	APIKey      string   `env:"NBA_MCP_API_KEY"`
	RequireAuth bool     `env:"NBA_MCP_REQUIRE_AUTH" envDefault:"false"`
	AuthHeader  string   `env:"NBA_MCP_AUTH_HEADER"  envDefault:"X-API-Key"`
	CORSOrigins []string `env:"NBA_MCP_CORS_ORIGINS" envSeparator:","`

	// Logging
	LogLevel  string `env:"NBA_MCP_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"NBA_MCP_LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported (want %s or %s)", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("NBA_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("MCP path must start with /, got %q", c.Path)
	}
	if c.Transport == TransportHTTP && c.RequireAuth && c.APIKey == "" {
		return fmt.Errorf("NBA_MCP_API_KEY is required (set env var or NBA_MCP_REQUIRE_AUTH=false)")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q is not supported (want text or json)", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
