// Package migrations embeds the goose migrations of the local SQLite store.
// The highest applied version is the local schema version reported in
// watermarks and pull requests.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
