package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// dialect renders the SQL that differs between backends. Documents live in a
// JSON column named data next to a TEXT primary key named id.
type dialect interface {
	// driverName is the database/sql driver registered for the backend.
	driverName() string
	// placeholder returns the n-th (1-based) bind parameter marker.
	placeholder(n int) string
	// jsonParam wraps a placeholder bound to JSON text for storage in data.
	jsonParam(ph string) string
	// fieldValue is a comparable JSON value at path inside data.
	fieldValue(path []string) string
	// fieldText is the text at path inside data.
	fieldText(path []string) string
	// jsonValue converts a placeholder bound to JSON text into a value
	// comparable with fieldValue.
	jsonValue(ph string) string
	// createTable is the DDL for a document table.
	createTable(table string) string
}

// validName matches GraphQL names. Table names and field path segments must
// match it before they are spliced into SQL.
var validName = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

func checkTable(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", types.ErrInvalidTable, name)
	}
	return nil
}

func checkPath(path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty field path", types.ErrInvalidData)
	}
	for _, seg := range path {
		if !validName.MatchString(seg) {
			return fmt.Errorf("%w: field %q", types.ErrInvalidData, seg)
		}
	}
	return nil
}

// quote quotes an identifier. Both SQLite and PostgreSQL accept the standard
// double-quote form.
func quote(ident string) string {
	return pq.QuoteIdentifier(ident)
}

type sqliteDialect struct{}

func (sqliteDialect) driverName() string         { return "sqlite" }
func (sqliteDialect) placeholder(int) string     { return "?" }
func (sqliteDialect) jsonParam(ph string) string { return ph }

func (sqliteDialect) fieldValue(path []string) string {
	return "json_extract(data, '" + sqlitePath(path) + "')"
}

func (d sqliteDialect) fieldText(path []string) string {
	return d.fieldValue(path)
}

func (sqliteDialect) jsonValue(ph string) string {
	return "json_extract(" + ph + ", '$')"
}

func (sqliteDialect) createTable(table string) string {
	return "CREATE TABLE IF NOT EXISTS " + quote(table) +
		" (id TEXT PRIMARY KEY, data TEXT NOT NULL CHECK (json_valid(data)))"
}

func sqlitePath(path []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range path {
		b.WriteString(`."`)
		b.WriteString(seg)
		b.WriteString(`"`)
	}
	return b.String()
}

type postgresDialect struct{}

func (postgresDialect) driverName() string           { return "pgx" }
func (postgresDialect) placeholder(n int) string     { return fmt.Sprintf("$%d", n) }
func (postgresDialect) jsonParam(ph string) string   { return ph + "::jsonb" }
func (postgresDialect) jsonValue(ph string) string   { return ph + "::jsonb" }
func (postgresDialect) fieldValue(p []string) string { return "data #> '" + postgresPath(p) + "'" }
func (postgresDialect) fieldText(p []string) string  { return "data #>> '" + postgresPath(p) + "'" }

func (postgresDialect) createTable(table string) string {
	return "CREATE TABLE IF NOT EXISTS " + quote(table) +
		" (id TEXT PRIMARY KEY, data JSONB NOT NULL)"
}

func postgresPath(path []string) string {
	return "{" + strings.Join(path, ",") + "}"
}

func dialectFor(backend string) (dialect, error) {
	switch backend {
	case types.BackendSQLite:
		return sqliteDialect{}, nil
	case types.BackendPostgres:
		return postgresDialect{}, nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
