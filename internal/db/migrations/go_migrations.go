// Package migrations contains the schema migrations. Every table uses
// column types that differ by database, so all of them are Go migrations.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// types maps the portable column kinds used by the migrations to the
// current dialect.
type types struct {
	id, text, key, timestamp, boolean, real string
}

func columnTypes() types {
	switch dialect {
	case "postgres":
		return types{id: "TEXT", text: "TEXT", key: "TEXT", timestamp: "TIMESTAMPTZ", boolean: "BOOLEAN", real: "DOUBLE PRECISION"}
	case "mysql":
		return types{id: "VARCHAR(36)", text: "LONGTEXT", key: "VARCHAR(191)", timestamp: "DATETIME(6)", boolean: "BOOLEAN", real: "DOUBLE"}
	default: // sqlite3
		return types{id: "TEXT", text: "TEXT", key: "TEXT", timestamp: "DATETIME", boolean: "BOOLEAN", real: "REAL"}
	}
}

func execAll(exec func(string) error, stmts ...string) error {
	for _, stmt := range stmts {
		if err := exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
