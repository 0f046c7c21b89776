package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

func TestCreateType(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	user, err := b.CreateType(ctx, types.TypeDefinition{
		Name:   "User",
		Fields: []types.FieldDefinition{{Name: "handle", Type: types.FieldTypeString}},
	})
	require.NoError(t, err)
	assert.Equal(t, types.KindObject, user.Kind)
	assert.Equal(t, []string{types.InterfaceNode}, user.Interfaces)
	require.NotNil(t, user.ID)
	assert.Equal(t, "id", user.Fields[0].Name)

	tests := []struct {
		name     string
		def      types.TypeDefinition
		userErr  bool
		sentinel error
	}{
		{name: "duplicate name", def: types.TypeDefinition{Name: "User"}, userErr: true},
		{name: "reserved name", def: types.TypeDefinition{Name: types.SecretTable}, userErr: true},
		{name: "page info name", def: types.TypeDefinition{Name: types.PageInfoName}, userErr: true},
		{name: "interface name", def: types.TypeDefinition{Name: types.InterfaceNode}, userErr: true},
		{name: "scalar name", def: types.TypeDefinition{Name: types.FieldTypeString}, userErr: true},
		{name: "root name", def: types.TypeDefinition{Name: types.QueryRootName}, userErr: true},
		{name: "derived name", def: types.TypeDefinition{Name: "_UserConnection"}, userErr: true},
		{
			name: "id with another type",
			def: types.TypeDefinition{Name: "Thing", Fields: []types.FieldDefinition{
				{Name: "id", Type: types.FieldTypeString},
			}},
			userErr: true,
		},
		{
			name: "nullable node id",
			def: types.TypeDefinition{Name: "Thing", Fields: []types.FieldDefinition{
				{Name: "id", Type: types.FieldTypeID},
			}},
			userErr: true,
		},
		{
			name:    "unknown interface",
			def:     types.TypeDefinition{Name: "Thing", Interfaces: []string{types.InterfaceNode, "Timestamped"}},
			userErr: true,
		},
		{
			name:    "builtin without node",
			def:     types.TypeDefinition{Name: "Thing", Interfaces: []string{types.InterfaceBuiltin}},
			userErr: true,
		},
		{
			name: "self reference without node",
			def: types.TypeDefinition{Name: "Tree", Interfaces: []string{}, Fields: []types.FieldDefinition{
				{Name: "parent", Type: "Tree"},
			}},
			userErr: true,
		},
		{name: "invalid name", def: types.TypeDefinition{Name: "Bad Name"}, sentinel: types.ErrInvalidTable},
		{
			name: "unknown field type",
			def: types.TypeDefinition{Name: "Post", Fields: []types.FieldDefinition{
				{Name: "author", Type: "Person"},
			}},
			sentinel: types.ErrTypeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.CreateType(ctx, tt.def)
			require.Error(t, err)
			if tt.userErr {
				assert.True(t, types.IsUserError(err), "got %v", err)
			}
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			if tt.def.Name != "User" {
				exists, err := b.HasByFilter(ctx, types.TypeTable, map[string]any{"name": tt.def.Name})
				require.NoError(t, err)
				assert.False(t, exists, "rejected type %s was stored", tt.def.Name)
			}
		})
	}

	t.Run("references to node types are accepted", func(t *testing.T) {
		post, err := b.CreateType(ctx, types.TypeDefinition{
			Name: "Post",
			Fields: []types.FieldDefinition{
				{Name: "author", Type: "User"},
				{Name: "parent", Type: "Post"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, post.Fields, 3)
	})

	t.Run("node types may declare their own id", func(t *testing.T) {
		tag, err := b.CreateType(ctx, types.TypeDefinition{
			Name:       "Tag",
			Interfaces: []string{types.InterfaceNode, types.InterfaceBuiltin},
			Fields: []types.FieldDefinition{
				{Name: "id", Type: types.FieldTypeID, NonNull: true},
				{Name: "label", Type: types.FieldTypeString},
			},
		})
		require.NoError(t, err)
		assert.Len(t, tag.Fields, 2)
	})

	t.Run("references to non-node types are rejected", func(t *testing.T) {
		_, err := b.CreateType(ctx, types.TypeDefinition{
			Name:       "Address",
			Interfaces: []string{},
		})
		require.NoError(t, err)
		_, err = b.CreateType(ctx, types.TypeDefinition{
			Name:   "Shop",
			Fields: []types.FieldDefinition{{Name: "address", Type: "Address"}},
		})
		assert.True(t, types.IsUserError(err))
	})
}

func TestCreateIndex(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	seedUsers(t, b)

	_, err := b.CreateIndex(ctx, types.Index{Type: "User", Name: "byAge", Fields: [][]string{{"age"}, {"id"}}})
	require.NoError(t, err)

	_, err = b.CreateIndex(ctx, types.Index{Type: "User", Name: "byAge", Fields: [][]string{{"handle"}}})
	assert.True(t, types.IsUserError(err), "got %v", err)

	_, err = b.CreateIndex(ctx, types.Index{Type: "Nope", Name: "x", Fields: [][]string{{"a"}}})
	assert.ErrorIs(t, err, types.ErrTypeNotFound)

	_, err = b.CreateIndex(ctx, types.Index{Type: "User", Name: "empty"})
	assert.ErrorIs(t, err, types.ErrInvalidIndex)

	_, err = b.CreateIndex(ctx, types.Index{Type: "User", Name: "bad", Fields: [][]string{{"a-b"}}})
	assert.ErrorIs(t, err, types.ErrInvalidIndex)

	// Filters keep working once the expression index exists.
	docs, err := b.GetAllByFilter(ctx, "User", map[string]any{"age": 41})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestCreateHook(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	seedUsers(t, b)

	_, err := b.CreateHook(ctx, types.Hook{Type: "Missing", Trigger: "afterCreate", URL: "https://example.com"})
	assert.ErrorIs(t, err, types.ErrTypeNotFound)

	_, err = b.CreateHook(ctx, types.Hook{Type: "User"})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestCreateIndex_DistinctNames(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	for _, name := range []string{"a_b", "a"} {
		_, err := b.CreateType(ctx, types.TypeDefinition{
			Name:   name,
			Fields: []types.FieldDefinition{{Name: "v", Type: types.FieldTypeString}},
		})
		require.NoError(t, err)
	}
	first := types.Index{Type: "a_b", Name: "c", Fields: [][]string{{"v"}}}
	second := types.Index{Type: "a", Name: "b_c", Fields: [][]string{{"v"}}}
	assert.NotEqual(t, indexName(first), indexName(second))

	_, err := b.CreateIndex(ctx, first)
	require.NoError(t, err)
	_, err = b.CreateIndex(ctx, second)
	require.NoError(t, err)

	db, err := b.conn()
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name IN (?, ?)",
		indexName(first), indexName(second)).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestCreateType_ReusesLeftoverTable(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	// A table without a definition is what a failed insert leaves behind.
	require.NoError(t, b.EnsureTable(ctx, "Draft"))
	exists, err := b.HasByFilter(ctx, types.TypeTable, map[string]any{"name": "Draft"})
	require.NoError(t, err)
	require.False(t, exists)

	_, err = b.CreateType(ctx, types.TypeDefinition{Name: "Draft"})
	require.NoError(t, err)
	meta, err := b.GetMetadata(ctx)
	require.NoError(t, err)
	require.Len(t, meta.Types, 1)
	assert.Equal(t, "Draft", meta.Types[0].Name)
}
