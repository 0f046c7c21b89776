package schema

import "github.com/graphql-go/graphql"

// Interfaces holds the interfaces types are built against.
type Interfaces struct {
	// Node marks types stored in their own table and addressable by ID.
	// Only Node types get root fields.
	Node *graphql.Interface
	// Builtin marks types defined by the system rather than by users.
	Builtin *graphql.Interface
}

// CreateInterfaces builds a fresh Node and Builtin pair. Concrete types
// resolve through their IsTypeOf functions.
func CreateInterfaces() Interfaces {
	idField := func() graphql.Fields {
		return graphql.Fields{
			"id": &graphql.Field{
				Type:        graphql.NewNonNull(ReindexID),
				Description: "The ID of the object.",
			},
		}
	}
	return Interfaces{
		Node: graphql.NewInterface(graphql.InterfaceConfig{
			Name:        "Node",
			Description: "An object with an ID.",
			Fields:      idField(),
		}),
		Builtin: graphql.NewInterface(graphql.InterfaceConfig{
			Name:        "Builtin",
			Description: "A type provided by the platform.",
			Fields:      idField(),
		}),
	}
}

// byName returns the interface with the given name.
func (i Interfaces) byName(name string) (*graphql.Interface, bool) {
	switch name {
	case i.Node.Name():
		return i.Node, true
	case i.Builtin.Name():
		return i.Builtin, true
	}
	return nil, false
}
