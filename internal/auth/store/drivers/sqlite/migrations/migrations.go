// Package migrations embeds the sqlite schema migration files so the
// binary can apply them at startup without external assets.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
