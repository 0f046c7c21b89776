package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// isTypeOf matches stored documents whose ID belongs to typeName.
func isTypeOf(typeName string) graphql.IsTypeOfFn {
	return func(p graphql.IsTypeOfParams) bool {
		doc, ok := p.Value.(types.Document)
		if !ok {
			return false
		}
		id, ok := types.DocumentID(doc)
		return ok && id.Type == typeName
	}
}

// CreateSecret builds the ReindexSecret type set. Secrets are written by
// administrators, never through create, update or replace mutations.
func CreateSecret(interfaces Interfaces) *TypeSet {
	secret := graphql.NewObject(graphql.ObjectConfig{
		Name:        types.SecretTable,
		Description: "A secret used to sign API tokens.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(ReindexID),
			},
			"value": &graphql.Field{
				Type: graphql.String,
			},
		},
		Interfaces: []*graphql.Interface{interfaces.Node, interfaces.Builtin},
		IsTypeOf:   isTypeOf(types.SecretTable),
	})
	return NewTypeSet(secret,
		graphql.InputObjectConfigFieldMap{
			"value": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
		OpCreate,
		OpUpdate,
		OpReplace,
	)
}
