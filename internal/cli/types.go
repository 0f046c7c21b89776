package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

func newTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Manage user types",
	}
	cmd.AddCommand(newTypeAddCmd(a), newTypeListCmd(a))
	return cmd
}

func newTypeAddCmd(a *app) *cobra.Command {
	var (
		fields      []string
		interfaces  []string
		description string
	)
	cmd := &cobra.Command{
		Use:   "add <Name>",
		Short: "Define a type and create its table",
		Long: "Define a type. Fields are given as name:Type, with a trailing ! for\n" +
			"non-null fields. Type is a scalar (ID, String, Int, Float, Boolean) or\n" +
			"the name of another Node type.",
		Example: "  reindex type add Post --field title:String! --field author:User",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def := types.TypeDefinition{
				Name:        args[0],
				Kind:        types.KindObject,
				Description: description,
				Interfaces:  interfaces,
			}
			for _, spec := range fields {
				f, err := parseFieldSpec(spec)
				if err != nil {
					return err
				}
				def.Fields = append(def.Fields, f)
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			created, err := b.CreateType(cmd.Context(), def)
			if err != nil {
				return failed("add type", err)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added type %s\n", created.Name)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field as name:Type or name:Type! (repeatable)")
	cmd.Flags().StringSliceVar(&interfaces, "interface", nil, "interfaces the type implements (default: Node)")
	cmd.Flags().StringVar(&description, "description", "", "type description")
	return cmd
}

// parseFieldSpec reads a name:Type[!] field flag.
func parseFieldSpec(spec string) (types.FieldDefinition, error) {
	name, typeName, ok := strings.Cut(spec, ":")
	if !ok || name == "" || typeName == "" {
		return types.FieldDefinition{}, userError("field %q: want name:Type", spec)
	}
	f := types.FieldDefinition{Name: name, Type: typeName}
	if strings.HasSuffix(typeName, "!") {
		f.Type = strings.TrimSuffix(typeName, "!")
		f.NonNull = true
	}
	return f, nil
}

func formatField(f types.FieldDefinition) string {
	s := f.Name + ": " + f.Type
	if f.NonNull {
		s += "!"
	}
	return s
}

func newTypeListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			defs, err := b.GetTypes(cmd.Context())
			if err != nil {
				return failed("list types", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonMode {
				return printJSON(out, defs)
			}
			for _, def := range defs {
				parts := make([]string, 0, len(def.Fields))
				for _, f := range def.Fields {
					parts = append(parts, formatField(f))
				}
				fmt.Fprintf(out, "%s [%s] { %s }\n", def.Name, strings.Join(def.Interfaces, ", "), strings.Join(parts, ", "))
			}
			return nil
		},
	}
}
