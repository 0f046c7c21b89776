package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mesh-intelligence/reindex/internal/store"
	"github.com/mesh-intelligence/reindex/pkg/types"
)

// pageInfoType is shared by every connection of a schema.
var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name:        types.PageInfoName,
	Description: "Information about a connection window.",
	Fields: graphql.Fields{
		"hasNextPage": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(types.PageInfo).HasNextPage, nil
			},
		},
		"hasPreviousPage": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(types.PageInfo).HasPreviousPage, nil
			},
		},
	},
})

// connectionArgs are the window arguments of a connection field.
var connectionArgs = graphql.FieldConfigArgument{
	"first":  &graphql.ArgumentConfig{Type: graphql.Int},
	"last":   &graphql.ArgumentConfig{Type: graphql.Int},
	"after":  &graphql.ArgumentConfig{Type: graphql.String},
	"before": &graphql.ArgumentConfig{Type: graphql.String},
}

// connection is the value behind a _<Type>Connection object. Its fields run
// their queries only when selected.
type connection struct {
	base     *store.Query
	page     *store.Query
	pageInfo store.PageInfoSource
}

func newConnection(base *store.Query, args map[string]interface{}) (*connection, error) {
	pageArgs := store.PageArgs{}
	if v, ok := args["first"].(int); ok {
		pageArgs.First = v
	}
	if v, ok := args["last"].(int); ok {
		pageArgs.Last = v
	}
	if v, ok := args["after"].(string); ok {
		pageArgs.After = v
	}
	if v, ok := args["before"].(string); ok {
		pageArgs.Before = v
	}
	page, info, err := store.Paginate(base, pageArgs)
	if err != nil {
		return nil, err
	}
	return &connection{base: base, page: page, pageInfo: info}, nil
}

func newEdgeType(name string, node *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"node": &graphql.Field{
				Type: node,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.Edge).Node, nil
				},
			},
			"cursor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.Edge).Cursor.Value, nil
				},
			},
		},
	})
}

func newConnectionType(name string, node, edge *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"count": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Int),
				Description: "Number of objects matching the connection, ignoring the window.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, err := storeFrom(p.Context)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					n, err := s.GetCount(p.Context, p.Source.(*connection).base)
					return n, clientError(p.Context, err)
				},
			},
			"nodes": &graphql.Field{
				Type: graphql.NewList(node),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, err := storeFrom(p.Context)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					nodes, err := s.GetNodes(p.Context, p.Source.(*connection).page)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					return nodes, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.NewList(edge),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, err := storeFrom(p.Context)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					edges, err := s.GetEdges(p.Context, p.Source.(*connection).page)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					return edges, nil
				},
			},
			"pageInfo": &graphql.Field{
				Type: graphql.NewNonNull(pageInfoType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, err := storeFrom(p.Context)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					info, err := s.GetPageInfo(p.Context, p.Source.(*connection).pageInfo)
					if err != nil {
						return nil, clientError(p.Context, err)
					}
					return info, nil
				},
			},
		},
	})
}
