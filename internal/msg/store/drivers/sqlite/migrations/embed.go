package migrations

import "embed"

// Migrations holds the .sql migration files compiled into the binary.
//
//go:embed *.sql
var Migrations embed.FS
