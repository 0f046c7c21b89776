package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// payload is the value behind a _<Type>Payload object.
type payload struct {
	ClientMutationID interface{}
	ID               *types.ID
	Changed          types.Document
}

func newPayloadType(name string, ts *TypeSet) *graphql.Object {
	changed := "changed" + ts.Name()
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"clientMutationId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*payload).ClientMutationID, nil
				},
			},
			"id": &graphql.Field{
				Type: ReindexID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if id := p.Source.(*payload).ID; id != nil {
						return *id, nil
					}
					return nil, nil
				},
			},
			changed: &graphql.Field{
				Type: ts.Type,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if doc := p.Source.(*payload).Changed; doc != nil {
						return doc, nil
					}
					return nil, nil
				},
			},
			changed + "Edge": &graphql.Field{
				Type: ts.Edge(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					doc := p.Source.(*payload).Changed
					if doc == nil {
						return nil, nil
					}
					id, _ := types.DocumentID(doc)
					return types.Edge{Node: doc, Cursor: types.Cursor{Value: id.Value}}, nil
				},
			},
		},
	})
}
