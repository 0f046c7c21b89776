package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectDefaultFields(t *testing.T) {
	t.Run("node types get id first", func(t *testing.T) {
		def := TypeDefinition{
			Name:       "User",
			Fields:     []FieldDefinition{{Name: "handle", Type: FieldTypeString}},
			Interfaces: []string{InterfaceNode},
		}
		got := InjectDefaultFields(def)
		assert.Len(t, got, 2)
		assert.Equal(t, "id", got[0].Name)
		assert.True(t, got[0].NonNull)
		assert.Equal(t, "handle", got[1].Name)
	})

	t.Run("declared id is not duplicated", func(t *testing.T) {
		def := TypeDefinition{
			Name: "User",
			Fields: []FieldDefinition{
				{Name: "id", Type: FieldTypeID, NonNull: true, Description: "custom"},
			},
			Interfaces: []string{InterfaceNode},
		}
		got := InjectDefaultFields(def)
		assert.Len(t, got, 1)
		assert.Equal(t, "custom", got[0].Description)
	})

	t.Run("non-node types are unchanged", func(t *testing.T) {
		def := TypeDefinition{
			Name:   "Address",
			Fields: []FieldDefinition{{Name: "street", Type: FieldTypeString}},
		}
		assert.Equal(t, def.Fields, InjectDefaultFields(def))
	})
}

func TestTypeDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     TypeDefinition
		wantErr error
	}{
		{name: "empty name", def: TypeDefinition{}, wantErr: ErrInvalidName},
		{name: "bad kind", def: TypeDefinition{Name: "User", Kind: "UNION"}, wantErr: ErrInvalidKind},
		{
			name:    "field without type",
			def:     TypeDefinition{Name: "User", Fields: []FieldDefinition{{Name: "handle"}}},
			wantErr: ErrInvalidField,
		},
		{
			name: "duplicate field",
			def: TypeDefinition{Name: "User", Fields: []FieldDefinition{
				{Name: "handle", Type: FieldTypeString},
				{Name: "handle", Type: FieldTypeInt},
			}},
			wantErr: ErrDuplicateField,
		},
		{
			name: "valid",
			def: TypeDefinition{Name: "User", Kind: KindObject, Fields: []FieldDefinition{
				{Name: "handle", Type: FieldTypeString},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTypeDefinitionValidate_Rejected(t *testing.T) {
	node := []string{InterfaceNode}
	tests := []struct {
		name string
		def  TypeDefinition
	}{
		{name: "metadata table", def: TypeDefinition{Name: TypeTable}},
		{name: "page info", def: TypeDefinition{Name: PageInfoName}},
		{name: "builtin interface", def: TypeDefinition{Name: InterfaceBuiltin}},
		{name: "id scalar", def: TypeDefinition{Name: FieldTypeID}},
		{name: "mutation root", def: TypeDefinition{Name: MutationRootName}},
		{name: "underscore prefix", def: TypeDefinition{Name: "_PostPayload"}},
		{
			name: "string id",
			def:  TypeDefinition{Name: "Thing", Fields: []FieldDefinition{{Name: "id", Type: FieldTypeString}}},
		},
		{
			name: "string id without node",
			def:  TypeDefinition{Name: "Thing", Interfaces: []string{}, Fields: []FieldDefinition{{Name: "id", Type: FieldTypeInt}}},
		},
		{
			name: "nullable node id",
			def:  TypeDefinition{Name: "Thing", Interfaces: node, Fields: []FieldDefinition{{Name: "id", Type: FieldTypeID}}},
		},
		{name: "unknown interface", def: TypeDefinition{Name: "Thing", Interfaces: []string{"Timestamped"}}},
		{name: "repeated interface", def: TypeDefinition{Name: "Thing", Interfaces: []string{InterfaceNode, InterfaceNode}}},
		{name: "builtin alone", def: TypeDefinition{Name: "Thing", Interfaces: []string{InterfaceBuiltin}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			require.Error(t, err)
			assert.True(t, IsUserError(err), "got %v", err)
		})
	}

	t.Run("nullable id without node", func(t *testing.T) {
		def := TypeDefinition{Name: "Thing", Interfaces: []string{}, Fields: []FieldDefinition{{Name: "id", Type: FieldTypeID}}}
		assert.NoError(t, def.Validate())
	})
}

func TestIsReservedTypeName(t *testing.T) {
	assert.True(t, IsReservedTypeName("Node"))
	assert.True(t, IsReservedTypeName("ReindexQueryRoot"))
	assert.True(t, IsReservedTypeName("_UserEdge"))
	assert.False(t, IsReservedTypeName("User"))
	assert.False(t, IsReservedTypeName("Pages"))
}

func TestUserError(t *testing.T) {
	err := NewUserError("Invalid ID for type User")
	assert.True(t, IsUserError(err))
	assert.EqualError(t, err, "Invalid ID for type User")
	assert.False(t, IsUserError(ErrDetached))
}
