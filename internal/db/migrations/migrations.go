// Package migrations holds the goose SQL migrations of the stats database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
