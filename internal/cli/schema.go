package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reindex/internal/schema"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the root fields of the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			exec, err := a.executor(cmd.Context(), b)
			if err != nil {
				return err
			}
			queries, mutations := schema.RootFields(exec.Schema())

			out := cmd.OutOrStdout()
			if a.jsonMode {
				return printJSON(out, map[string][]string{"query": queries, "mutation": mutations})
			}
			fmt.Fprintln(out, "query:")
			for _, name := range queries {
				fmt.Fprintln(out, "  "+name)
			}
			fmt.Fprintln(out, "mutation:")
			for _, name := range mutations {
				fmt.Fprintln(out, "  "+name)
			}
			return nil
		},
	}
}
