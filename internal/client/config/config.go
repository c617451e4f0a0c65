package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

// Config holds runtime settings for the entrysync client.
//
// Every field can be set from the JSON file, from the environment
// (ENTRYSYNC_* variables) or from a command-line flag. Later sources win.
type Config struct {
	ServerEndpointAddr  string        `env:"ENTRYSYNC_SERVER_ADDR"`
	RealtimeURL         string        `env:"ENTRYSYNC_REALTIME_URL"`
	AccessToken         string        `env:"ENTRYSYNC_ACCESS_TOKEN"`
	DatabasePath        string        `env:"ENTRYSYNC_DB_PATH"`
	OnlineCheckInterval time.Duration `env:"ENTRYSYNC_ONLINE_CHECK_INTERVAL"`
	PingTimeout         time.Duration `env:"ENTRYSYNC_PING_TIMEOUT"`
	PushTimeout         time.Duration `env:"ENTRYSYNC_PUSH_TIMEOUT"`
	PullTimeout         time.Duration `env:"ENTRYSYNC_PULL_TIMEOUT"`
	LogLevel            string        `env:"ENTRYSYNC_LOG_LEVEL"`
	// RealtimeReadTimeout drops a change feed connection that delivered
	// neither a frame nor a ping for this long. It must outlast the
	// server's ping interval.
	RealtimeReadTimeout time.Duration `env:"ENTRYSYNC_REALTIME_READ_TIMEOUT"`
}

// LoadDefaults populates c with defaults suitable for a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RealtimeURL = "ws://127.0.0.1:8080/v1/changes"
	c.DatabasePath = "entrysync.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.PingTimeout = 2 * time.Second
	c.PushTimeout = 15 * time.Second
	c.PullTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.RealtimeReadTimeout = 75 * time.Second
}

// Load builds a Config from defaults, the optional JSON file, the
// environment and finally args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ServerEndpointAddr == "":
		return fmt.Errorf("server address is required")
	case c.DatabasePath == "":
		return fmt.Errorf("database path is required")
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	case c.PushTimeout <= 0 || c.PullTimeout <= 0 || c.PingTimeout <= 0:
		return fmt.Errorf("timeouts must be positive")
	case c.RealtimeURL != "" && c.RealtimeReadTimeout <= 0:
		return fmt.Errorf("realtime read timeout must be positive, got %s", c.RealtimeReadTimeout)
	}
	return nil
}

// parseEnv overlays variables that are present; absent ones keep the
// value from earlier sources.
func parseEnv(cfg *Config) error {
	_, err := env.UnmarshalFromEnviron(cfg)
	return err
}
