// Package migrations embeds the SQL migration files so the migrator
// binary carries them without needing the source tree on disk.
package migrations

import "embed"

//go:embed migrations/*.sql
var FS embed.FS
