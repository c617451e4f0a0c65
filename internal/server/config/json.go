package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/entrysync/internal/flagx"
	"github.com/dmitrijs2005/entrysync/internal/timex"
)

// jsonConfig is the file representation; absent keys keep earlier values.
type jsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	MinSchemaVersion            *int            `json:"min_schema_version"`
	PingInterval                *timex.Duration `json:"ping_interval"`
	LogLevel                    *string         `json:"log_level"`
}

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

	if jc.EndpointAddrGRPC != nil {
		cfg.EndpointAddrGRPC = *jc.EndpointAddrGRPC
	}
	if jc.EndpointAddrHTTP != nil {
		cfg.EndpointAddrHTTP = *jc.EndpointAddrHTTP
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.MinSchemaVersion != nil {
		cfg.MinSchemaVersion = *jc.MinSchemaVersion
	}
	if jc.PingInterval != nil {
		cfg.PingInterval = jc.PingInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
