package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// scalarTypes maps stored scalar names to GraphQL scalars.
var scalarTypes = map[string]*graphql.Scalar{
	types.FieldTypeID:      ReindexID,
	types.FieldTypeString:  graphql.String,
	types.FieldTypeInt:     graphql.Int,
	types.FieldTypeFloat:   graphql.Float,
	types.FieldTypeBoolean: graphql.Boolean,
}

// CreateUserTypes builds a type set for every stored type definition. Fields
// naming another Node type hold an ID and resolve to the referenced object.
func CreateUserTypes(defs []types.TypeDefinition, interfaces Interfaces) ([]*TypeSet, error) {
	byName := make(map[string]types.TypeDefinition, len(defs))
	for _, def := range defs {
		if _, dup := byName[def.Name]; dup {
			return nil, fmt.Errorf("type %s defined twice", def.Name)
		}
		byName[def.Name] = def
	}

	registry := make(map[string]*TypeSet, len(defs))
	sets := make([]*TypeSet, 0, len(defs))
	for _, def := range defs {
		ifaces := make([]*graphql.Interface, 0, len(def.Interfaces))
		for _, name := range def.Interfaces {
			iface, ok := interfaces.byName(name)
			if !ok {
				return nil, fmt.Errorf("type %s implements unknown interface %s", def.Name, name)
			}
			ifaces = append(ifaces, iface)
		}

		fields := types.InjectDefaultFields(def)
		input := graphql.InputObjectConfigFieldMap{}
		for _, f := range fields {
			if _, ok := scalarTypes[f.Type]; !ok {
				target, known := byName[f.Type]
				if !known || !target.Implements(types.InterfaceNode) {
					return nil, fmt.Errorf("field %s.%s: %w: %s", def.Name, f.Name, types.ErrTypeNotFound, f.Type)
				}
			}
			if f.Name == "id" {
				continue
			}
			input[f.Name] = &graphql.InputObjectFieldConfig{
				Type:        inputType(f),
				Description: f.Description,
			}
		}

		var typeOf graphql.IsTypeOfFn
		if len(ifaces) > 0 {
			typeOf = isTypeOf(def.Name)
		}
		obj := graphql.NewObject(graphql.ObjectConfig{
			Name:        def.Name,
			Description: def.Description,
			Interfaces:  ifaces,
			Fields:      userFields(fields, registry),
			IsTypeOf:    typeOf,
		})
		ts := NewTypeSet(obj, input)
		registry[def.Name] = ts
		sets = append(sets, ts)
	}
	return sets, nil
}

// userFields defers field construction until every object of the registry
// exists, so types may reference each other and themselves.
func userFields(fields []types.FieldDefinition, registry map[string]*TypeSet) graphql.FieldsThunk {
	return func() graphql.Fields {
		out := graphql.Fields{}
		for _, f := range fields {
			field := &graphql.Field{Description: f.Description}
			if scalar, ok := scalarTypes[f.Type]; ok {
				field.Type = scalar
			} else {
				field.Type = registry[f.Type].Type
				field.Resolve = referenceResolver(f.Name, f.Type)
			}
			if f.NonNull {
				field.Type = graphql.NewNonNull(field.Type)
			}
			out[f.Name] = field
		}
		return out
	}
}

// inputType is the type a field accepts in mutation input. References are
// written as IDs and every field is optional so updates can name a subset.
func inputType(f types.FieldDefinition) graphql.Input {
	if scalar, ok := scalarTypes[f.Type]; ok {
		return scalar
	}
	return ReindexID
}

func referenceResolver(field, target string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		doc, _ := p.Source.(types.Document)
		id, ok := types.IDFromValue(doc[field])
		if !ok {
			return nil, nil
		}
		s, err := storeFrom(p.Context)
		if err != nil {
			return nil, clientError(p.Context, err)
		}
		obj, err := s.GetByID(p.Context, target, &id)
		if err != nil {
			return nil, clientError(p.Context, err)
		}
		if obj == nil {
			return nil, nil
		}
		return obj, nil
	}
}
