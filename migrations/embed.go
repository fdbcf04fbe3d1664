// Package migrations embeds the SQL schema migrations for the database providers.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
