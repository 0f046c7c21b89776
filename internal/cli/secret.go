package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// secretBytes is the entropy of a generated secret.
const secretBytes = 32

func newSecretCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage token signing secrets",
	}
	cmd.AddCommand(newSecretCreateCmd(a), newSecretListCmd(a))
	return cmd
}

func newSecretCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create [value]",
		Short: "Store a secret, generating one when no value is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			} else {
				buf := make([]byte, secretBytes)
				if _, err := rand.Read(buf); err != nil {
					return failed("generate secret", err)
				}
				value = hex.EncodeToString(buf)
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			secret, err := b.CreateSecret(cmd.Context(), value)
			if err != nil {
				return failed("create secret", err)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), secret)
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret.Value)
			return nil
		},
	}
}

func newSecretListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			secrets, err := b.GetSecrets(cmd.Context())
			if err != nil {
				return failed("list secrets", err)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), secrets)
			}
			for _, s := range secrets {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
