package connector

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDriver is returned for a driver name that has no dialect
var ErrUnknownDriver = errors.New("unknown database driver")

// Dialect captures the SQL differences between the supported engines
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a driver name to its dialect
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, name)
}

// DriverName returns the database/sql driver registered for the dialect
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return string(d)
}

// IsEmbedded reports whether the database lives in a local file
func (d Dialect) IsEmbedded() bool {
	return d == SQLite
}

// QuoteIdentifier quotes a table or column name. Names like "Order Details" need it.
func (d Dialect) QuoteIdentifier(name string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Placeholder returns the bind parameter for the n-th (1-based) argument
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Placeholders returns a comma separated list of count bind parameters
func (d Dialect) Placeholders(count int) string {
	placeholders := make([]string, count)
	for i := range placeholders {
		placeholders[i] = d.Placeholder(i + 1)
	}
	return strings.Join(placeholders, ", ")
}

// ListTablesQuery returns a query yielding one column, the base table names, ordered by name
func (d Dialect) ListTablesQuery() string {
	switch d {
	case MySQL:
		return `
		SELECT table_name AS name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	case Postgres:
		return `
		SELECT table_name AS name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	}
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
}

// DropTableStatement returns a statement dropping a table if it exists
func (d Dialect) DropTableStatement(table string) string {
	stmt := "DROP TABLE IF EXISTS " + d.QuoteIdentifier(table)
	if d == Postgres {
		stmt += " CASCADE"
	}
	return stmt
}
