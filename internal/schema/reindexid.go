package schema

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// ReindexID is the scalar of every object ID. Clients see the opaque text
// form; resolvers receive a types.ID.
var ReindexID = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "ID",
	Description: "The ID of an object. Encodes the type name and the row key.",
	Serialize: func(value interface{}) interface{} {
		id, ok := types.IDFromValue(value)
		if !ok {
			return nil
		}
		return id.String()
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		id, err := types.ParseID(s)
		if err != nil {
			return nil
		}
		return id
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		s, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		id, err := types.ParseID(s.Value)
		if err != nil {
			return nil
		}
		return id
	},
})

// argID reads an ID argument parsed by ReindexID.
func argID(args map[string]interface{}, name string) (*types.ID, bool) {
	id, ok := types.IDFromValue(args[name])
	if !ok {
		return nil, false
	}
	return &id, true
}
