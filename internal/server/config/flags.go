package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/entrysync/internal/flagx"
)

// parseFlags overlays cfg with the flags below; other arguments are ignored.
//
//	-a string          gRPC bind address (e.g. ":50051")
//	-w string          HTTP bind address for the change feed and metrics
//	-d string          PostgreSQL DSN
//	-s string          JWT HMAC secret key
//	-t duration        access token validity
//	-m int             minimum client schema version for incremental pulls
//	-log-level string  debug, info, warn or error
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-d", "-s", "-t", "-m", "-log-level"})

	fs := flag.NewFlagSet("entrysync-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&cfg.EndpointAddrHTTP, "w", cfg.EndpointAddrHTTP, "HTTP address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")
	fs.IntVar(&cfg.MinSchemaVersion, "m", cfg.MinSchemaVersion, "minimum client schema version")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
