package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// Create inserts doc into the table of typeName and returns it with its ID.
// A new UUID v7 key is generated unless doc carries an ID of typeName.
func (b *Backend) Create(ctx context.Context, typeName string, doc types.Document) (types.Document, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	if err := checkTable(typeName); err != nil {
		return nil, err
	}
	key := newKey()
	if raw, ok := doc["id"]; ok && raw != nil {
		id, ok := types.IDFromValue(raw)
		if !ok || !types.IsValidID(typeName, &id) {
			return nil, types.NewUserError("Invalid ID for type " + typeName)
		}
		key = id.Value
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	stmt := "INSERT INTO " + quote(typeName) + " (id, data) VALUES (" +
		b.dialect.placeholder(1) + ", " + b.dialect.jsonParam(b.dialect.placeholder(2)) + ")"
	b.trace(stmt, []any{key})
	if _, err := db.ExecContext(ctx, stmt, key, data); err != nil {
		return nil, fmt.Errorf("insert %s: %w", typeName, err)
	}
	return merge(types.Document{"id": types.ID{Type: typeName, Value: key}}, doc), nil
}

// Update merges the fields of patch into the row addressed by id and returns
// the updated row.
func (b *Backend) Update(ctx context.Context, typeName string, id *types.ID, patch types.Document) (types.Document, error) {
	return b.rewrite(ctx, typeName, id, func(existing types.Document) types.Document {
		return merge(existing, patch)
	})
}

// Replace swaps the whole document addressed by id for doc and returns the
// new row.
func (b *Backend) Replace(ctx context.Context, typeName string, id *types.ID, doc types.Document) (types.Document, error) {
	return b.rewrite(ctx, typeName, id, func(existing types.Document) types.Document {
		return merge(types.Document{"id": existing["id"]}, doc)
	})
}

// Delete removes the row addressed by id and returns it as it was.
func (b *Backend) Delete(ctx context.Context, typeName string, id *types.ID) (types.Document, error) {
	var removed types.Document
	err := b.withinTx(ctx, func(tx *sql.Tx) error {
		existing, err := b.existing(ctx, tx, typeName, id)
		if err != nil {
			return err
		}
		stmt := "DELETE FROM " + quote(typeName) + " WHERE id = " + b.dialect.placeholder(1)
		b.trace(stmt, []any{id.Value})
		if _, err := tx.ExecContext(ctx, stmt, id.Value); err != nil {
			return fmt.Errorf("delete %s: %w", typeName, err)
		}
		removed = existing
		return nil
	})
	return removed, err
}

func (b *Backend) rewrite(ctx context.Context, typeName string, id *types.ID, next func(types.Document) types.Document) (types.Document, error) {
	var updated types.Document
	err := b.withinTx(ctx, func(tx *sql.Tx) error {
		existing, err := b.existing(ctx, tx, typeName, id)
		if err != nil {
			return err
		}
		doc := next(existing)
		data, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		stmt := "UPDATE " + quote(typeName) + " SET data = " +
			b.dialect.jsonParam(b.dialect.placeholder(1)) + " WHERE id = " + b.dialect.placeholder(2)
		b.trace(stmt, []any{id.Value})
		if _, err := tx.ExecContext(ctx, stmt, data, id.Value); err != nil {
			return fmt.Errorf("update %s: %w", typeName, err)
		}
		updated = doc
		return nil
	})
	return updated, err
}

// existing loads the row a write targets, rejecting foreign and unknown IDs.
func (b *Backend) existing(ctx context.Context, q querier, typeName string, id *types.ID) (types.Document, error) {
	if !types.IsValidID(typeName, id) {
		return nil, types.NewUserError("Invalid ID for type " + typeName)
	}
	doc, err := b.firstIn(ctx, q, NewQuery(typeName).Filter([]string{"id"}, id.Value))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, types.NewUserError(fmt.Sprintf("Can not find %s object with given ID: %s", typeName, id))
	}
	return doc, nil
}

func (b *Backend) withinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := b.conn()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
