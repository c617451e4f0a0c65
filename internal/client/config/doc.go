// Package config loads runtime configuration for the entrysync client.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. ENTRYSYNC_* environment variables.
//  4. Command-line flags.
//
// The JSON file uses snake_case keys and accepts durations either as
// strings like "3s" or as integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "realtime_url": "ws://127.0.0.1:8080/v1/changes",
//	  "database_path": "entrysync.db",
//	  "online_check_interval": "3s",
//	  "push_timeout": "15s"
//	}
package config
