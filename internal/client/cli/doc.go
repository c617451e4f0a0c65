// Package cli provides the interactive entrysync client.
//
// It wires configuration, the local SQLite store, the gRPC transport, the
// realtime feed and the sync orchestrator, then runs a line-oriented REPL
// on stdin. Records are edited locally first; syncing happens on demand,
// on realtime notifications and after sign-in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
