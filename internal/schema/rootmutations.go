package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// MutationCreators build the per-type fields of the Mutation root.
var MutationCreators = []Creator{
	{Operation: OpCreate, Build: createCreate},
	{Operation: OpUpdate, Build: createUpdate},
	{Operation: OpReplace, Build: createReplace},
	{Operation: OpDelete, Build: createDelete},
}

// write performs one mutation against the store.
type write func(p graphql.ResolveParams, s Store, id *types.ID, doc types.Document) (types.Document, error)

func createCreate(ts *TypeSet, _ Interfaces) *graphql.Field {
	return mutation(ts, OpCreate, func(p graphql.ResolveParams, s Store, _ *types.ID, doc types.Document) (types.Document, error) {
		return s.Create(p.Context, ts.Name(), doc)
	})
}

func createUpdate(ts *TypeSet, _ Interfaces) *graphql.Field {
	return mutation(ts, OpUpdate, func(p graphql.ResolveParams, s Store, id *types.ID, doc types.Document) (types.Document, error) {
		return s.Update(p.Context, ts.Name(), id, doc)
	})
}

func createReplace(ts *TypeSet, _ Interfaces) *graphql.Field {
	return mutation(ts, OpReplace, func(p graphql.ResolveParams, s Store, id *types.ID, doc types.Document) (types.Document, error) {
		return s.Replace(p.Context, ts.Name(), id, doc)
	})
}

func createDelete(ts *TypeSet, _ Interfaces) *graphql.Field {
	return mutation(ts, OpDelete, func(p graphql.ResolveParams, s Store, id *types.ID, _ types.Document) (types.Document, error) {
		return s.Delete(p.Context, ts.Name(), id)
	})
}

// mutation builds the <op><Type>(input: _<Op><Type>Input!) field. The input
// carries the ID for every operation but create and the object fields for
// every operation but delete.
func mutation(ts *TypeSet, op Operation, fn write) *graphql.Field {
	typeName := ts.Name()
	return &graphql.Field{
		Name: string(op) + typeName,
		Type: ts.Payload(),
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(ts.mutationInput(op))},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			input, _ := p.Args["input"].(map[string]interface{})
			var id *types.ID
			if op != OpCreate {
				parsed, ok := argID(input, "id")
				if !ok {
					return nil, types.NewUserError("Invalid ID for type " + typeName)
				}
				id = parsed
			}
			doc := types.Document{}
			if fields, ok := input[lowerFirst(typeName)].(map[string]interface{}); ok {
				for k, v := range fields {
					doc[k] = v
				}
			}

			s, err := storeFrom(p.Context)
			if err != nil {
				return nil, clientError(p.Context, err)
			}
			changed, err := fn(p, s, id, doc)
			if err != nil {
				return nil, clientError(p.Context, err)
			}
			out := &payload{ClientMutationID: input["clientMutationId"], Changed: changed}
			if changedID, ok := types.DocumentID(changed); ok {
				out.ID = &changedID
			}
			loggerFrom(p.Context).WithField("type", typeName).WithField("operation", op).Debug("mutation applied")
			return out, nil
		},
	}
}
