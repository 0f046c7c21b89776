package types

import "strings"

// Kinds of stored type definitions.
const (
	KindObject = "OBJECT"
)

// Names of the built-in interfaces a type definition may implement.
const (
	InterfaceNode    = "Node"
	InterfaceBuiltin = "Builtin"
)

// Scalar field type names accepted in a FieldDefinition.
const (
	FieldTypeID      = "ID"
	FieldTypeString  = "String"
	FieldTypeInt     = "Int"
	FieldTypeFloat   = "Float"
	FieldTypeBoolean = "Boolean"
)

// Names of the types every generated schema defines.
const (
	QueryRootName    = "ReindexQueryRoot"
	MutationRootName = "ReindexMutationRoot"
	PageInfoName     = "PageInfo"
)

var reservedTypeNames = map[string]bool{
	QueryRootName:    true,
	MutationRootName: true,
	PageInfoName:     true,
	InterfaceNode:    true,
	InterfaceBuiltin: true,
	FieldTypeID:      true,
	FieldTypeString:  true,
	FieldTypeInt:     true,
	FieldTypeFloat:   true,
	FieldTypeBoolean: true,
}

// IsReservedTypeName reports whether name is taken by the schema itself or
// by a metadata table. Names starting with an underscore are kept for the
// connection, edge, input and payload types derived from each user type.
func IsReservedTypeName(name string) bool {
	return reservedTypeNames[name] || IsMetadataTable(name) || strings.HasPrefix(name, "_")
}

// FieldDefinition is one field of a stored type. Type is either a scalar
// name or the name of another Node type, in which case the field holds an ID.
type FieldDefinition struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	NonNull     bool   `json:"nonNull,omitempty"`
	Description string `json:"description,omitempty"`
}

// TypeDefinition is a schema-defined record shape stored in ReindexType.
type TypeDefinition struct {
	ID          *ID               `json:"id,omitempty"`
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	Interfaces  []string          `json:"interfaces"`
}

// Implements reports whether the definition lists the named interface.
func (t TypeDefinition) Implements(name string) bool {
	for _, i := range t.Interfaces {
		if i == name {
			return true
		}
	}
	return false
}

// Field returns the named field definition.
func (t TypeDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Validate checks the definition before it is stored.
func (t TypeDefinition) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if t.Kind != "" && t.Kind != KindObject {
		return ErrInvalidKind
	}
	if IsReservedTypeName(t.Name) {
		return NewUserError("Type name " + t.Name + " is reserved")
	}
	if err := t.validateInterfaces(); err != nil {
		return err
	}
	node := t.Implements(InterfaceNode)
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" || f.Type == "" {
			return ErrInvalidField
		}
		if seen[f.Name] {
			return ErrDuplicateField
		}
		seen[f.Name] = true
		if f.Name != "id" {
			continue
		}
		if f.Type != FieldTypeID {
			return NewUserError("Field id of type " + t.Name + " must have type ID")
		}
		if node && !f.NonNull {
			return NewUserError("Field id of Node type " + t.Name + " must be non-null")
		}
	}
	return nil
}

// validateInterfaces accepts Node, and Builtin only alongside Node since
// default fields are injected for Node types alone.
func (t TypeDefinition) validateInterfaces() error {
	seen := make(map[string]bool, len(t.Interfaces))
	for _, name := range t.Interfaces {
		if name != InterfaceNode && name != InterfaceBuiltin {
			return NewUserError("Type " + t.Name + " implements unknown interface " + name)
		}
		if seen[name] {
			return NewUserError("Type " + t.Name + " lists interface " + name + " twice")
		}
		seen[name] = true
	}
	if seen[InterfaceBuiltin] && !seen[InterfaceNode] {
		return NewUserError("Type " + t.Name + " must implement Node to implement Builtin")
	}
	return nil
}

// DefaultFields returns the fields every type implementing Node carries.
func DefaultFields() []FieldDefinition {
	return []FieldDefinition{
		{Name: "id", Type: FieldTypeID, NonNull: true, Description: "The ID of the object."},
	}
}

// InjectDefaultFields returns the fields of t with the default fields placed
// first. Fields t already declares are not duplicated. Types that do not
// implement Node are returned unchanged.
func InjectDefaultFields(t TypeDefinition) []FieldDefinition {
	if !t.Implements(InterfaceNode) {
		return t.Fields
	}
	fields := make([]FieldDefinition, 0, len(t.Fields)+1)
	for _, def := range DefaultFields() {
		if _, ok := t.Field(def.Name); !ok {
			fields = append(fields, def)
		}
	}
	return append(fields, t.Fields...)
}

// IsScalarFieldType reports whether name is one of the built-in scalars.
func IsScalarFieldType(name string) bool {
	switch name {
	case FieldTypeID, FieldTypeString, FieldTypeInt, FieldTypeFloat, FieldTypeBoolean:
		return true
	}
	return false
}
