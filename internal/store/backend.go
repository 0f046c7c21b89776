// Package store implements the document store behind the GraphQL schema.
// Each type is a table of JSON documents keyed by an opaque row key; the
// same queries run on SQLite (embedded) and PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// DatabaseFile is the SQLite file created inside Config.DataDir.
const DatabaseFile = "reindex.db"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Backend is the store. Callers attach it to a database, run queries, and
// detach when done.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dialect  dialect
	log      logrus.FieldLogger
}

// NewBackend creates a detached Backend. A nil logger uses the logrus
// standard logger.
func NewBackend(log logrus.FieldLogger) *Backend {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Backend{log: log.WithField("component", "store")}
}

// Attach opens the database described by config and creates the metadata
// tables plus the table of every stored type.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	d, err := dialectFor(config.Backend)
	if err != nil {
		return err
	}

	dsn, err := dataSource(config)
	if err != nil {
		return err
	}
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", config.Backend, err)
	}
	if config.Backend == types.BackendSQLite {
		// All work shares one connection; SQLite serializes writers anyway.
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connect %s: %w", config.Backend, err)
	}
	for _, table := range types.MetadataTableNames {
		if _, err := db.ExecContext(ctx, d.createTable(table)); err != nil {
			db.Close()
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}

	b.db = db
	b.dialect = d
	b.config = config

	// Tables of user types may be missing when metadata was written by
	// another process.
	typesRows, err := b.getTypes(ctx, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("load types: %w", err)
	}
	for _, t := range typesRows {
		if err := b.ensureTable(ctx, db, t.Name); err != nil {
			db.Close()
			return err
		}
	}

	b.attached = true
	b.log.WithFields(logrus.Fields{
		"backend": config.Backend,
		"types":   len(typesRows),
	}).Debug("store attached")
	return nil
}

// Detach closes the database. Detach is idempotent; after Detach every
// operation returns ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.log.Debug("store detached")
	return nil
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// conn returns the open database or ErrDetached.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// EnsureTable creates the document table of a user type.
func (b *Backend) EnsureTable(ctx context.Context, table string) error {
	db, err := b.conn()
	if err != nil {
		return err
	}
	return b.ensureTable(ctx, db, table)
}

func (b *Backend) ensureTable(ctx context.Context, q querier, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, b.dialect.createTable(table)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func dataSource(config types.Config) (string, error) {
	if config.Backend == types.BackendPostgres {
		return config.DSN, nil
	}
	if config.DSN != "" {
		return config.DSN, nil
	}
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, DatabaseFile), nil
}

// newKey generates a UUID v7 row key.
func newKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
