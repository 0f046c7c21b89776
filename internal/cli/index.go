package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

func newIndexCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage indexes on user types",
	}
	cmd.AddCommand(newIndexAddCmd(a), newIndexListCmd(a))
	return cmd
}

func newIndexAddCmd(a *app) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:     "add <Type> <Name>",
		Short:   "Store an index and build it on the type's table",
		Example: "  reindex index add User byCity --field profile.city --field handle",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fields) == 0 {
				return userError("at least one --field is required")
			}
			idx := types.Index{Type: args[0], Name: args[1]}
			for _, f := range fields {
				idx.Fields = append(idx.Fields, strings.Split(f, "."))
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			created, err := b.CreateIndex(cmd.Context(), idx)
			if err != nil {
				return failed("add index", err)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added index %s on %s\n", created.Name, created.Type)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "indexed field path, dot separated (repeatable)")
	return cmd
}

func newIndexListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			indexes, err := b.GetIndexes(cmd.Context())
			if err != nil {
				return failed("list indexes", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonMode {
				return printJSON(out, indexes)
			}
			for _, idx := range indexes {
				paths := make([]string, 0, len(idx.Fields))
				for _, f := range idx.Fields {
					paths = append(paths, strings.Join(f, "."))
				}
				fmt.Fprintf(out, "%s.%s (%s)\n", idx.Type, idx.Name, strings.Join(paths, ", "))
			}
			return nil
		},
	}
}
