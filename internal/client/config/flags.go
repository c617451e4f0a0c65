package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/entrysync/internal/flagx"
)

var knownFlags = []string{"-a", "-r", "-t", "-d", "-i", "-push-timeout", "-pull-timeout", "-realtime-read-timeout", "-log-level"}

// parseFlags overlays cfg with the flags it knows about; anything else in
// args is ignored.
//
//	-a string           gRPC server address
//	-r string           realtime websocket URL
//	-t string           access token
//	-d string           local database file
//	-i duration         online check interval
//	-push-timeout dur   push request timeout
//	-pull-timeout dur   pull request timeout
//	-realtime-read-timeout dur
//	                    change feed silence before reconnecting
//	-log-level string   debug, info, warn or error
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("entrysync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the sync server")
	fs.StringVar(&cfg.RealtimeURL, "r", cfg.RealtimeURL, "realtime websocket URL")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.DurationVar(&cfg.OnlineCheckInterval, "i", cfg.OnlineCheckInterval, "online check interval")
	fs.DurationVar(&cfg.PushTimeout, "push-timeout", cfg.PushTimeout, "push request timeout")
	fs.DurationVar(&cfg.PullTimeout, "pull-timeout", cfg.PullTimeout, "pull request timeout")
	fs.DurationVar(&cfg.RealtimeReadTimeout, "realtime-read-timeout", cfg.RealtimeReadTimeout, "change feed read timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
