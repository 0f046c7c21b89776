// Package store exposes the factory for reindex storage backends while the
// implementation stays internal.
package store

import (
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/reindex/internal/store"
)

// NewBackend creates a detached backend. Call Attach with a Config to open
// the SQLite or Postgres database it describes.
//
// Example:
//
//	backend := store.NewBackend(logrus.StandardLogger())
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".reindex-db",
//	})
//	defer backend.Detach()
func NewBackend(log logrus.FieldLogger) *store.Backend {
	return store.NewBackend(log)
}
