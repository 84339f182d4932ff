// Package migrations holds the SQLite schema as ordered, embedded SQL files.
package migrations

import "embed"

// FS contains every *.sql migration, applied in lexical filename order.
//
//go:embed *.sql
var FS embed.FS
