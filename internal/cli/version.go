package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reindex/pkg/reindex"
)

const modulePath = "github.com/mesh-intelligence/reindex"

// commit is set at build time with -ldflags.
var commit = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reindex version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "reindex v%s (%s)\nmodule: %s\n", reindex.Version, commit, modulePath)
			return nil
		},
	}
}
