// Package migrations carries the SQL migrations inside the binary.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS

// Dir is the directory inside FS holding the postgres migrations.
const Dir = "postgres"
