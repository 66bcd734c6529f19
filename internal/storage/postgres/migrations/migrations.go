// Package migrations embeds the goose migration files for both services.
package migrations

import "embed"

//go:embed users/*.sql
var Users embed.FS

//go:embed orders/*.sql
var Orders embed.FS
