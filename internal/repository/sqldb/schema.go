package sqldb

import (
	"context"
	"embed"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// InitSchema creates the users and products tables if they do not exist.
// Statements are applied one at a time so drivers without multi-statement
// support behave the same as SQLite.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	file := "schema/sqlite.sql"
	if db.DriverName() == DriverPostgres {
		file = "schema/postgres.sql"
	}

	raw, err := schemaFS.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "read schema")
	}

	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "apply schema statement %q", firstLine(stmt))
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
