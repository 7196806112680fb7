package migrations

import "embed"

// Files holds the ordered SQL migrations applied on startup.
//
//go:embed *.sql
var Files embed.FS
