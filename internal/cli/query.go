package cli

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reindex/internal/schema"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		file      string
		variables string
		operation string
	)
	cmd := &cobra.Command{
		Use:   "query [document]",
		Short: "Execute a GraphQL document and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := schema.Request{OperationName: operation}
			switch {
			case len(args) == 1 && file != "":
				return userError("pass a document or --file, not both")
			case len(args) == 1:
				req.Query = args[0]
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return failed("read document", err)
				}
				req.Query = string(data)
			default:
				return userError("a document or --file is required")
			}
			if variables != "" {
				if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
					return userError("parse --variables: %v", err)
				}
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			exec, err := a.executor(cmd.Context(), b)
			if err != nil {
				return err
			}
			result := exec.Execute(cmd.Context(), req)
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if result.HasErrors() {
				return &exitError{code: exitUserError, err: errors.New(result.Errors[0].Message)}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the document from a file")
	cmd.Flags().StringVar(&variables, "variables", "", "variables as a JSON object")
	cmd.Flags().StringVar(&operation, "operation", "", "operation to run when the document has several")
	return cmd
}
