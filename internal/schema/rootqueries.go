package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// QueryCreators build the per-type fields of the Query root.
var QueryCreators = []Creator{
	{Operation: OpGet, Build: createGet},
	{Operation: OpAll, Build: createAll},
}

func createGet(ts *TypeSet, _ Interfaces) *graphql.Field {
	typeName := ts.Name()
	return &graphql.Field{
		Name:        string(OpGet) + typeName,
		Type:        ts.Type,
		Description: "Fetch a " + typeName + " by ID.",
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(ReindexID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, ok := argID(p.Args, "id")
			if !ok {
				return nil, types.NewUserError("Invalid ID for type " + typeName)
			}
			return getByID(p, typeName, id)
		},
	}
}

func createAll(ts *TypeSet, _ Interfaces) *graphql.Field {
	typeName := ts.Name()
	return &graphql.Field{
		Name:        string(OpAll) + pluralize(typeName),
		Type:        ts.Connection(),
		Description: "All " + typeName + " objects.",
		Args:        connectionArgs,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			s, err := storeFrom(p.Context)
			if err != nil {
				return nil, clientError(p.Context, err)
			}
			conn, err := newConnection(s.GetAllQuery(typeName), p.Args)
			if err != nil {
				return nil, clientError(p.Context, err)
			}
			return conn, nil
		},
	}
}

// createNode builds the node(id) field that fetches any object of known.
func createNode(interfaces Interfaces, known map[string]bool) *graphql.Field {
	return &graphql.Field{
		Name:        "node",
		Type:        interfaces.Node,
		Description: "Fetch any object by ID.",
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(ReindexID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, ok := argID(p.Args, "id")
			if !ok || !known[id.Type] {
				return nil, types.NewUserError("Invalid ID")
			}
			return getByID(p, id.Type, id)
		},
	}
}

func getByID(p graphql.ResolveParams, typeName string, id *types.ID) (interface{}, error) {
	s, err := storeFrom(p.Context)
	if err != nil {
		return nil, clientError(p.Context, err)
	}
	doc, err := s.GetByID(p.Context, typeName, id)
	if err != nil {
		return nil, clientError(p.Context, err)
	}
	if doc == nil {
		return nil, nil
	}
	return doc, nil
}
