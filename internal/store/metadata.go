package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// CreateType creates the table of a type and stores its definition. Field
// types must be scalars or the names of stored Node types. A Node type may
// reference itself.
func (b *Backend) CreateType(ctx context.Context, def types.TypeDefinition) (types.TypeDefinition, error) {
	if def.Kind == "" {
		def.Kind = types.KindObject
	}
	if def.Interfaces == nil {
		def.Interfaces = []string{types.InterfaceNode}
	}
	if err := def.Validate(); err != nil {
		return types.TypeDefinition{}, err
	}
	if err := checkTable(def.Name); err != nil {
		return types.TypeDefinition{}, err
	}
	exists, err := b.HasByFilter(ctx, types.TypeTable, map[string]any{"name": def.Name})
	if err != nil {
		return types.TypeDefinition{}, err
	}
	if exists {
		return types.TypeDefinition{}, types.NewUserError("Type " + def.Name + " already exists")
	}
	for _, f := range def.Fields {
		if err := b.checkFieldType(ctx, def, f); err != nil {
			return types.TypeDefinition{}, err
		}
	}

	// The table goes first so a failed create leaves no definition without
	// storage. An empty leftover table is reused by the next attempt.
	if err := b.EnsureTable(ctx, def.Name); err != nil {
		return types.TypeDefinition{}, err
	}
	def.ID = nil
	doc, err := toDocument(def)
	if err != nil {
		return types.TypeDefinition{}, err
	}
	created, err := b.Create(ctx, types.TypeTable, doc)
	if err != nil {
		return types.TypeDefinition{}, err
	}
	var out types.TypeDefinition
	if err := fromDocument(created, &out); err != nil {
		return types.TypeDefinition{}, err
	}
	out.Fields = types.InjectDefaultFields(out)
	b.log.WithField("type", def.Name).Info("type created")
	return out, nil
}

func (b *Backend) checkFieldType(ctx context.Context, self types.TypeDefinition, f types.FieldDefinition) error {
	if types.IsScalarFieldType(f.Type) {
		return nil
	}
	if f.Type == self.Name {
		if !self.Implements(types.InterfaceNode) {
			return types.NewUserError(fmt.Sprintf("Field %s must reference a Node type, %s is not one", f.Name, f.Type))
		}
		return nil
	}
	doc, err := b.GetByField(ctx, types.TypeTable, "name", f.Type)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: field %s references %s", types.ErrTypeNotFound, f.Name, f.Type)
	}
	var target types.TypeDefinition
	if err := fromDocument(doc, &target); err != nil {
		return err
	}
	if !target.Implements(types.InterfaceNode) {
		return types.NewUserError(fmt.Sprintf("Field %s must reference a Node type, %s is not one", f.Name, f.Type))
	}
	return nil
}

// CreateSecret stores a secret value.
func (b *Backend) CreateSecret(ctx context.Context, value string) (types.Secret, error) {
	if value == "" {
		return types.Secret{}, fmt.Errorf("%w: empty secret", types.ErrInvalidData)
	}
	doc, err := b.Create(ctx, types.SecretTable, types.Document{"value": value})
	if err != nil {
		return types.Secret{}, err
	}
	id, _ := types.DocumentID(doc)
	return types.Secret{ID: &id, Value: value}, nil
}

// CreateIndex stores an index definition and builds the matching database
// index on the type's table.
func (b *Backend) CreateIndex(ctx context.Context, idx types.Index) (types.Index, error) {
	if idx.Name == "" || len(idx.Fields) == 0 {
		return types.Index{}, types.ErrInvalidIndex
	}
	if err := checkTable(idx.Name); err != nil {
		return types.Index{}, fmt.Errorf("%w: name %q", types.ErrInvalidIndex, idx.Name)
	}
	typeDoc, err := b.GetByField(ctx, types.TypeTable, "name", idx.Type)
	if err != nil {
		return types.Index{}, err
	}
	if typeDoc == nil {
		return types.Index{}, fmt.Errorf("%w: %s", types.ErrTypeNotFound, idx.Type)
	}
	exists, err := b.HasByFilter(ctx, types.IndexTable, map[string]any{"type": idx.Type, "name": idx.Name})
	if err != nil {
		return types.Index{}, err
	}
	if exists {
		return types.Index{}, types.NewUserError("Index " + idx.Name + " already exists on " + idx.Type)
	}
	exprs := make([]string, 0, len(idx.Fields))
	for _, path := range idx.Fields {
		if isKeyPath(path) {
			exprs = append(exprs, "id")
			continue
		}
		if err := checkPath(path); err != nil {
			return types.Index{}, fmt.Errorf("%w: %v", types.ErrInvalidIndex, err)
		}
		exprs = append(exprs, "("+b.dialect.fieldValue(path)+")")
	}

	db, err := b.conn()
	if err != nil {
		return types.Index{}, err
	}
	stmt := "CREATE INDEX IF NOT EXISTS " + quote(indexName(idx)) + " ON " + quote(idx.Type) +
		" (" + strings.Join(exprs, ", ") + ")"
	b.trace(stmt, nil)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return types.Index{}, fmt.Errorf("create index %s: %w", idx.Name, err)
	}

	idx.ID = nil
	doc, err := toDocument(idx)
	if err != nil {
		return types.Index{}, err
	}
	created, err := b.Create(ctx, types.IndexTable, doc)
	if err != nil {
		return types.Index{}, err
	}
	var out types.Index
	if err := fromDocument(created, &out); err != nil {
		return types.Index{}, err
	}
	return out, nil
}

// indexName is the database name of a stored index. The dot cannot appear
// in a type or index name, so distinct pairs never share a name.
func indexName(idx types.Index) string {
	return "idx_" + idx.Type + "." + idx.Name
}

// CreateHook stores a hook registration for a stored type.
func (b *Backend) CreateHook(ctx context.Context, hook types.Hook) (types.Hook, error) {
	if hook.Type == "" || hook.Trigger == "" || hook.URL == "" {
		return types.Hook{}, fmt.Errorf("%w: hook needs type, trigger and url", types.ErrInvalidData)
	}
	exists, err := b.HasByFilter(ctx, types.TypeTable, map[string]any{"name": hook.Type})
	if err != nil {
		return types.Hook{}, err
	}
	if !exists {
		return types.Hook{}, fmt.Errorf("%w: %s", types.ErrTypeNotFound, hook.Type)
	}
	hook.ID = nil
	doc, err := toDocument(hook)
	if err != nil {
		return types.Hook{}, err
	}
	created, err := b.Create(ctx, types.HookTable, doc)
	if err != nil {
		return types.Hook{}, err
	}
	var out types.Hook
	if err := fromDocument(created, &out); err != nil {
		return types.Hook{}, err
	}
	return out, nil
}
