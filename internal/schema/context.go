package schema

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/reindex/internal/store"
	"github.com/mesh-intelligence/reindex/pkg/types"
)

// Store is the data access resolvers need.
type Store interface {
	GetAllQuery(typeName string) *store.Query
	GetByID(ctx context.Context, typeName string, id *types.ID) (types.Document, error)
	GetCount(ctx context.Context, query *store.Query) (int, error)
	GetNodes(ctx context.Context, query *store.Query) ([]types.Document, error)
	GetEdges(ctx context.Context, query *store.Query) ([]types.Edge, error)
	GetPageInfo(ctx context.Context, source store.PageInfoSource) (types.PageInfo, error)
	Create(ctx context.Context, typeName string, doc types.Document) (types.Document, error)
	Update(ctx context.Context, typeName string, id *types.ID, patch types.Document) (types.Document, error)
	Replace(ctx context.Context, typeName string, id *types.ID, doc types.Document) (types.Document, error)
	Delete(ctx context.Context, typeName string, id *types.ID) (types.Document, error)
}

type contextKey int

const (
	storeKey contextKey = iota
	loggerKey
)

// WithStore returns a context carrying the store resolvers read from.
func WithStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// WithLogger returns a context carrying the logger resolvers report to.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

var errNoStore = errors.New("no store in resolver context")

func storeFrom(ctx context.Context) (Store, error) {
	if ctx != nil {
		if s, ok := ctx.Value(storeKey).(Store); ok {
			return s, nil
		}
	}
	return nil, errNoStore
}

func loggerFrom(ctx context.Context) logrus.FieldLogger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok {
			return log
		}
	}
	return logrus.StandardLogger()
}

// errInternal replaces failures that are not meant for clients.
var errInternal = errors.New("Internal server error")

// clientError passes user errors through and logs everything else.
func clientError(ctx context.Context, err error) error {
	if err == nil || types.IsUserError(err) {
		return err
	}
	loggerFrom(ctx).WithError(err).Error("resolver failed")
	return errInternal
}
