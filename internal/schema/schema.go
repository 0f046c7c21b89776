// Package schema builds the executable GraphQL schema of a reindex app from
// its stored metadata and resolves root fields against a store.
package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// CreateSchema builds the Query and Mutation roots for the builtin types and
// the user types of meta.
func CreateSchema(meta types.Metadata) (graphql.Schema, error) {
	interfaces := CreateInterfaces()
	userSets, err := CreateUserTypes(meta.Types, interfaces)
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("user types: %w", err)
	}
	typeSets := append([]*TypeSet{CreateSecret(interfaces)}, userSets...)

	known := make(map[string]bool, len(typeSets))
	objects := make([]graphql.Type, 0, len(typeSets))
	for _, ts := range typeSets {
		objects = append(objects, ts.Type)
		if ts.Implements(interfaces.Node) {
			known[ts.Name()] = true
		}
	}

	queryFields := CreateRootFieldsForTypes(QueryCreators, typeSets, interfaces)
	queryFields["node"] = createNode(interfaces, known)
	config := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   types.QueryRootName,
			Fields: queryFields,
		}),
		Types: objects,
	}
	if mutationFields := CreateRootFieldsForTypes(MutationCreators, typeSets, interfaces); len(mutationFields) > 0 {
		config.Mutation = graphql.NewObject(graphql.ObjectConfig{
			Name:   types.MutationRootName,
			Fields: mutationFields,
		})
	}

	s, err := graphql.NewSchema(config)
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

// RootFields lists the sorted field names of the query and mutation roots.
func RootFields(s graphql.Schema) (queries, mutations []string) {
	names := func(obj *graphql.Object) []string {
		if obj == nil {
			return nil
		}
		out := make([]string, 0, len(obj.Fields()))
		for name := range obj.Fields() {
			out = append(out, name)
		}
		sort.Strings(out)
		return out
	}
	return names(s.QueryType()), names(s.MutationType())
}

// Request is a GraphQL request as clients send it.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Executor runs requests against one schema and store.
type Executor struct {
	schema graphql.Schema
	store  Store
	log    logrus.FieldLogger
}

// NewExecutor returns an Executor. A nil log uses the standard logger.
func NewExecutor(s graphql.Schema, store Store, log logrus.FieldLogger) *Executor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Executor{schema: s, store: store, log: log.WithField("component", "graphql")}
}

// Schema returns the schema requests run against.
func (e *Executor) Schema() graphql.Schema {
	return e.schema
}

// Execute runs req. Errors are reported in the result.
func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Result {
	ctx = WithLogger(WithStore(ctx, e.store), e.log)
	result := graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	if result.HasErrors() {
		e.log.WithField("errors", len(result.Errors)).Debug("request failed")
	}
	return result
}
