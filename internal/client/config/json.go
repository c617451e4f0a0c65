package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/entrysync/internal/flagx"
	"github.com/dmitrijs2005/entrysync/internal/timex"
)

// jsonConfig is the file representation. Durations are timex.Duration so
// the file may use "3s" or integer nanoseconds. Pointers distinguish an
// absent key from an empty one.
type jsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	RealtimeURL         *string         `json:"realtime_url"`
	AccessToken         *string         `json:"access_token"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	PingTimeout         *timex.Duration `json:"ping_timeout"`
	PushTimeout         *timex.Duration `json:"push_timeout"`
	PullTimeout         *timex.Duration `json:"pull_timeout"`
	LogLevel            *string         `json:"log_level"`
	RealtimeReadTimeout *timex.Duration `json:"realtime_read_timeout"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.RealtimeURL, jc.RealtimeURL)
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.PingTimeout != nil {
		cfg.PingTimeout = jc.PingTimeout.Duration
	}
	if jc.PushTimeout != nil {
		cfg.PushTimeout = jc.PushTimeout.Duration
	}
	if jc.PullTimeout != nil {
		cfg.PullTimeout = jc.PullTimeout.Duration
	}
	if jc.RealtimeReadTimeout != nil {
		cfg.RealtimeReadTimeout = jc.RealtimeReadTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
