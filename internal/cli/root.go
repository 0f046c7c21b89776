// Package cli implements the reindex command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reindex/internal/schema"
	"github.com/mesh-intelligence/reindex/internal/store"
	"github.com/mesh-intelligence/reindex/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds the global flags and the settings loaded before a command runs.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool

	settings settings
	log      *logrus.Logger
}

// NewRootCmd creates the top-level "reindex" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "reindex",
		Short: "A GraphQL backend over SQLite or Postgres",
		Long: "reindex stores user-defined types in SQL tables and serves them through\n" +
			"a GraphQL schema built from the stored type definitions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $REINDEX_CONFIG_DIR or the user config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory for the sqlite backend")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newSchemaCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newTypeCmd(a))
	root.AddCommand(newSecretCmd(a))
	root.AddCommand(newIndexCmd(a))

	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reindex:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitError carries the exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// failed wraps err with op and classifies it as a user or system error.
func failed(op string, err error) error {
	code := exitSysError
	if isUserFacing(err) {
		code = exitUserError
	}
	return &exitError{code: code, err: fmt.Errorf("%s: %w", op, err)}
}

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func isUserFacing(err error) bool {
	if types.IsUserError(err) {
		return true
	}
	for _, target := range []error{
		types.ErrInvalidName,
		types.ErrInvalidKind,
		types.ErrInvalidField,
		types.ErrDuplicateField,
		types.ErrInvalidTable,
		types.ErrTypeNotFound,
		types.ErrInvalidIndex,
		types.ErrInvalidData,
		types.ErrMalformedID,
		types.ErrBackendEmpty,
		types.ErrBackendUnknown,
		types.ErrDSNRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// exitCode maps a command error to a process exit code. Errors raised by
// cobra itself, such as unknown flags, are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// attach opens the backend described by the loaded settings. The caller must
// Detach it.
func (a *app) attach() (*store.Backend, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, failed("resolve data dir", err)
	}
	b := store.NewBackend(a.log)
	if err := b.Attach(cfg); err != nil {
		return nil, failed("attach backend", err)
	}
	return b, nil
}

// executor builds the schema from the stored metadata of b.
func (a *app) executor(ctx context.Context, b *store.Backend) (*schema.Executor, error) {
	meta, err := b.GetMetadata(ctx)
	if err != nil {
		return nil, failed("read metadata", err)
	}
	s, err := schema.CreateSchema(meta)
	if err != nil {
		return nil, failed("build schema", err)
	}
	return schema.NewExecutor(s, b, a.log), nil
}
