package schema

import (
	"github.com/graphql-go/graphql"
)

// Operation names a kind of root field. Type sets blacklist root fields by
// operation.
type Operation string

// Root field operations.
const (
	OpGet     Operation = "get"
	OpAll     Operation = "all"
	OpCreate  Operation = "create"
	OpUpdate  Operation = "update"
	OpReplace Operation = "replace"
	OpDelete  Operation = "delete"
)

// TypeSet is an object type together with the derived types its root fields
// need and the operations it refuses.
type TypeSet struct {
	Type                  *graphql.Object
	BlacklistedRootFields []Operation

	// InputFields are the writable fields of Type. The ID is never included.
	InputFields graphql.InputObjectConfigFieldMap

	derived map[string]graphql.Type
}

// NewTypeSet returns a TypeSet for obj.
func NewTypeSet(obj *graphql.Object, input graphql.InputObjectConfigFieldMap, blacklist ...Operation) *TypeSet {
	return &TypeSet{
		Type:                  obj,
		BlacklistedRootFields: blacklist,
		InputFields:           input,
		derived:               make(map[string]graphql.Type),
	}
}

// Name returns the name of the object type.
func (ts *TypeSet) Name() string {
	return ts.Type.Name()
}

// Implements reports whether the object type implements iface.
func (ts *TypeSet) Implements(iface *graphql.Interface) bool {
	for _, i := range ts.Type.Interfaces() {
		if i == iface {
			return true
		}
	}
	return false
}

// Blacklisted reports whether op must not get a root field for this type.
func (ts *TypeSet) Blacklisted(op Operation) bool {
	for _, b := range ts.BlacklistedRootFields {
		if b == op {
			return true
		}
	}
	return false
}

// memo builds a derived type once. A schema must not hold two type values
// with the same name.
func (ts *TypeSet) memo(name string, build func(name string) graphql.Type) graphql.Type {
	if ts.derived == nil {
		ts.derived = make(map[string]graphql.Type)
	}
	if t, ok := ts.derived[name]; ok {
		return t
	}
	t := build(name)
	ts.derived[name] = t
	return t
}

// Edge returns the _<Type>Edge object.
func (ts *TypeSet) Edge() *graphql.Object {
	return ts.memo("_"+ts.Name()+"Edge", func(name string) graphql.Type {
		return newEdgeType(name, ts.Type)
	}).(*graphql.Object)
}

// Connection returns the _<Type>Connection object.
func (ts *TypeSet) Connection() *graphql.Object {
	return ts.memo("_"+ts.Name()+"Connection", func(name string) graphql.Type {
		return newConnectionType(name, ts.Type, ts.Edge())
	}).(*graphql.Object)
}

// Input returns the _<Type>Input object listing the writable fields.
func (ts *TypeSet) Input() *graphql.InputObject {
	return ts.memo("_"+ts.Name()+"Input", func(name string) graphql.Type {
		fields := graphql.InputObjectConfigFieldMap{}
		for k, v := range ts.InputFields {
			fields[k] = v
		}
		return graphql.NewInputObject(graphql.InputObjectConfig{
			Name:   name,
			Fields: fields,
		})
	}).(*graphql.InputObject)
}

// Payload returns the _<Type>Payload object returned by mutations.
func (ts *TypeSet) Payload() *graphql.Object {
	return ts.memo("_"+ts.Name()+"Payload", func(name string) graphql.Type {
		return newPayloadType(name, ts)
	}).(*graphql.Object)
}

// mutationInput returns the relay input object of one mutation.
func (ts *TypeSet) mutationInput(op Operation) *graphql.InputObject {
	return ts.memo("_"+upperFirst(string(op))+ts.Name()+"Input", func(name string) graphql.Type {
		fields := graphql.InputObjectConfigFieldMap{
			"clientMutationId": &graphql.InputObjectFieldConfig{Type: graphql.String},
		}
		if op != OpCreate {
			fields["id"] = &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(ReindexID)}
		}
		if op != OpDelete && len(ts.InputFields) > 0 {
			fields[lowerFirst(ts.Name())] = &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(ts.Input())}
		}
		return graphql.NewInputObject(graphql.InputObjectConfig{
			Name:   name,
			Fields: fields,
		})
	}).(*graphql.InputObject)
}
