package schema

import (
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

func TestReindexID(t *testing.T) {
	id := types.ID{Type: "User", Value: "u1"}
	text := id.String()

	t.Run("serializes IDs and stored forms", func(t *testing.T) {
		assert.Equal(t, text, ReindexID.Serialize(id))
		assert.Equal(t, text, ReindexID.Serialize(&id))
		assert.Equal(t, text, ReindexID.Serialize(map[string]interface{}{"type": "User", "value": "u1"}))
		assert.Nil(t, ReindexID.Serialize(42))
	})

	t.Run("parses values", func(t *testing.T) {
		assert.Equal(t, id, ReindexID.ParseValue(text))
		assert.Nil(t, ReindexID.ParseValue("not base64!"))
		assert.Nil(t, ReindexID.ParseValue(7))
	})

	t.Run("parses string literals", func(t *testing.T) {
		assert.Equal(t, id, ReindexID.ParseLiteral(&ast.StringValue{Kind: "StringValue", Value: text}))
		assert.Nil(t, ReindexID.ParseLiteral(&ast.IntValue{Kind: "IntValue", Value: "1"}))
	})
}

func TestArgID(t *testing.T) {
	id := types.ID{Type: "User", Value: "u1"}
	got, ok := argID(map[string]interface{}{"id": id}, "id")
	assert.True(t, ok)
	assert.Equal(t, &id, got)

	_, ok = argID(map[string]interface{}{}, "id")
	assert.False(t, ok)
}
