package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// GetSecrets returns the value of every stored secret.
func (b *Backend) GetSecrets(ctx context.Context) ([]string, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	stmt := "SELECT " + b.dialect.fieldText([]string{"value"}) + " FROM " + quote(types.SecretTable) + " ORDER BY id"
	b.trace(stmt, nil)
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query secrets: %w", err)
	}
	defer rows.Close()

	secrets := []string{}
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan secret: %w", err)
		}
		if value.Valid {
			secrets = append(secrets, value.String)
		}
	}
	return secrets, rows.Err()
}

// GetTypes returns every stored type ordered by name, with IDs attached and
// default fields injected.
func (b *Backend) GetTypes(ctx context.Context) ([]types.TypeDefinition, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	return b.getTypes(ctx, db)
}

func (b *Backend) getTypes(ctx context.Context, q querier) ([]types.TypeDefinition, error) {
	docs, err := b.run(ctx, q, NewQuery(types.TypeTable).OrderBy("name"))
	if err != nil {
		return nil, err
	}
	return decodeTypes(docs)
}

// GetIndexes returns every stored index.
func (b *Backend) GetIndexes(ctx context.Context) ([]types.Index, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	docs, err := b.run(ctx, db, NewQuery(types.IndexTable))
	if err != nil {
		return nil, err
	}
	return decodeIndexes(docs)
}

// GetMetadata reads types, indexes and hooks in one read-only transaction.
// Types have default fields injected.
func (b *Backend) GetMetadata(ctx context.Context) (types.Metadata, error) {
	db, err := b.conn()
	if err != nil {
		return types.Metadata{}, err
	}
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return types.Metadata{}, fmt.Errorf("begin metadata read: %w", err)
	}
	defer tx.Rollback()

	var meta types.Metadata
	if meta.Types, err = b.getTypes(ctx, tx); err != nil {
		return types.Metadata{}, err
	}
	indexDocs, err := b.run(ctx, tx, NewQuery(types.IndexTable))
	if err != nil {
		return types.Metadata{}, err
	}
	if meta.Indexes, err = decodeIndexes(indexDocs); err != nil {
		return types.Metadata{}, err
	}
	hookDocs, err := b.run(ctx, tx, NewQuery(types.HookTable))
	if err != nil {
		return types.Metadata{}, err
	}
	meta.Hooks = make([]types.Hook, 0, len(hookDocs))
	for _, doc := range hookDocs {
		var h types.Hook
		if err := fromDocument(doc, &h); err != nil {
			return types.Metadata{}, err
		}
		meta.Hooks = append(meta.Hooks, h)
	}
	return meta, tx.Commit()
}

// GetAllQuery returns the unfiltered query over the table of typeName.
func (b *Backend) GetAllQuery(typeName string) *Query {
	return NewQuery(typeName)
}

// GetByID returns the row of typeName addressed by id, or nil when there is
// none. An ID of another type is a user error.
func (b *Backend) GetByID(ctx context.Context, typeName string, id *types.ID) (types.Document, error) {
	if !types.IsValidID(typeName, id) {
		return nil, types.NewUserError("Invalid ID for type " + typeName)
	}
	return b.first(ctx, NewQuery(typeName).Filter([]string{"id"}, id.Value))
}

// GetByField returns the first row of typeName whose field equals value, or
// nil. field is a name or a path into nested objects. When the path starts at
// "id", value must be an ID and its Value is compared.
func (b *Backend) GetByField(ctx context.Context, typeName string, field any, value any) (types.Document, error) {
	var path []string
	switch f := field.(type) {
	case string:
		path = []string{f}
	case []string:
		path = f
	default:
		return nil, fmt.Errorf("%w: field must be a string or a path, got %T", types.ErrInvalidData, field)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty field path", types.ErrInvalidData)
	}

	actual := value
	if path[0] == "id" {
		id, ok := types.IDFromValue(value)
		if !ok {
			return nil, types.NewUserError("Invalid ID for type " + typeName)
		}
		actual = id.Value
	}
	return b.first(ctx, NewQuery(typeName).Filter(path, actual))
}

// getAllByFilterQuery turns a field/value filter into a query. The "id" key
// compares the row key with the ID's Value.
func getAllByFilterQuery(typeName string, filter map[string]any) (*Query, error) {
	q := NewQuery(typeName)
	for key, value := range filter {
		if key == "id" {
			id, ok := types.IDFromValue(value)
			if !ok {
				return nil, types.NewUserError("Invalid ID for type " + typeName)
			}
			value = id.Value
		}
		q = q.Filter([]string{key}, value)
	}
	return q, nil
}

// GetAllByFilter returns every row of typeName matching all keys of filter.
func (b *Backend) GetAllByFilter(ctx context.Context, typeName string, filter map[string]any) ([]types.Document, error) {
	q, err := getAllByFilterQuery(typeName, filter)
	if err != nil {
		return nil, err
	}
	return b.GetNodes(ctx, q)
}

// HasByFilter reports whether any row of typeName matches filter.
func (b *Backend) HasByFilter(ctx context.Context, typeName string, filter map[string]any) (bool, error) {
	q, err := getAllByFilterQuery(typeName, filter)
	if err != nil {
		return false, err
	}
	n, err := b.GetCount(ctx, q.Limit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetCount returns the number of rows query selects.
func (b *Backend) GetCount(ctx context.Context, query *Query) (int, error) {
	db, err := b.conn()
	if err != nil {
		return 0, err
	}
	return b.count(ctx, db, query)
}

func (b *Backend) count(ctx context.Context, q querier, query *Query) (int, error) {
	stmt, vals, err := query.countSQL(b.dialect)
	if err != nil {
		return 0, err
	}
	b.trace(stmt, vals)
	var n int
	if err := q.QueryRowContext(ctx, stmt, vals...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", query.table, err)
	}
	return n, nil
}

// GetNodes returns the rows query selects.
func (b *Backend) GetNodes(ctx context.Context, query *Query) ([]types.Document, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	return b.run(ctx, db, query)
}

// GetEdges returns the rows query selects, each paired with a cursor on its
// row key.
func (b *Backend) GetEdges(ctx context.Context, query *Query) ([]types.Edge, error) {
	nodes, err := b.GetNodes(ctx, query)
	if err != nil {
		return nil, err
	}
	edges := make([]types.Edge, 0, len(nodes))
	for _, node := range nodes {
		id, _ := types.DocumentID(node)
		edges = append(edges, types.Edge{
			Node:   node,
			Cursor: types.Cursor{Value: id.Value},
		})
	}
	return edges, nil
}

// GetPageInfo resolves page info from a source that is either a plain value
// or a query still to run.
func (b *Backend) GetPageInfo(ctx context.Context, source PageInfoSource) (types.PageInfo, error) {
	return source.PageInfo(ctx, b)
}

// first returns the first row of query or nil.
func (b *Backend) first(ctx context.Context, query *Query) (types.Document, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	return b.firstIn(ctx, db, query)
}

func (b *Backend) firstIn(ctx context.Context, q querier, query *Query) (types.Document, error) {
	docs, err := b.run(ctx, q, query.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// run executes query and decodes every row with its ID.
func (b *Backend) run(ctx context.Context, q querier, query *Query) ([]types.Document, error) {
	stmt, vals, err := query.selectSQL(b.dialect)
	if err != nil {
		return nil, err
	}
	b.trace(stmt, vals)
	rows, err := q.QueryContext(ctx, stmt, vals...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", query.table, err)
	}
	defer rows.Close()

	docs := []types.Document{}
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", query.table, err)
		}
		doc, err := decodeDocument(query.table, key, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (b *Backend) trace(stmt string, vals []any) {
	b.log.WithFields(logrus.Fields{"sql": stmt, "args": vals}).Debug("query")
}

func decodeTypes(docs []types.Document) ([]types.TypeDefinition, error) {
	defs := make([]types.TypeDefinition, 0, len(docs))
	for _, doc := range docs {
		var def types.TypeDefinition
		if err := fromDocument(doc, &def); err != nil {
			return nil, err
		}
		def.Fields = types.InjectDefaultFields(def)
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeIndexes(docs []types.Document) ([]types.Index, error) {
	indexes := make([]types.Index, 0, len(docs))
	for _, doc := range docs {
		var idx types.Index
		if err := fromDocument(doc, &idx); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}
