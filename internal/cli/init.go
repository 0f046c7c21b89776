package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize reindex storage",
		Long:  "Create the configuration directory and config.yaml, then create the metadata tables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.configDir, 0o755); err != nil {
				return failed("create config directory", err)
			}

			cfg, err := a.storeConfig()
			if err != nil {
				return failed("resolve data dir", err)
			}
			written, err := writeConfigIfMissing(a.configPath(), configFile{
				Backend: cfg.Backend,
				DataDir: cfg.DataDir,
				DSN:     cfg.DSN,
			})
			if err != nil {
				return failed("write config", err)
			}
			if written {
				a.log.WithField("path", a.configPath()).Info("wrote default config")
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			if err := b.Detach(); err != nil {
				return failed("finalize storage", err)
			}

			where := cfg.DataDir
			if where == "" {
				where = cfg.Backend
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reindex initialized (%s)\n", where)
			return nil
		},
	}
}
