package schema

import "github.com/graphql-go/graphql"

// Creator builds one root field for a type set. Operation identifies the
// creator for blacklisting.
type Creator struct {
	Operation Operation
	Build     func(ts *TypeSet, interfaces Interfaces) *graphql.Field
}

// CreateRootFieldsForTypes builds the root fields of every type set that
// implements Node, skipping creators the type set blacklists. Fields are
// keyed by name; on collision the later type set wins.
func CreateRootFieldsForTypes(creators []Creator, typeSets []*TypeSet, interfaces Interfaces) graphql.Fields {
	fields := graphql.Fields{}
	for _, ts := range typeSets {
		if !ts.Implements(interfaces.Node) {
			continue
		}
		for _, c := range creators {
			if ts.Blacklisted(c.Operation) {
				continue
			}
			field := c.Build(ts, interfaces)
			fields[field.Name] = field
		}
	}
	return fields
}
