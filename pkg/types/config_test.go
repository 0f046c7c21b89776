package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "empty backend", config: Config{DataDir: "/tmp/data"}, wantErr: ErrBackendEmpty},
		{name: "unknown backend", config: Config{Backend: "rethinkdb"}, wantErr: ErrBackendUnknown},
		{name: "postgres needs a dsn", config: Config{Backend: BackendPostgres}, wantErr: ErrDSNRequired},
		{name: "postgres with dsn", config: Config{Backend: BackendPostgres, DSN: "postgres://localhost/reindex"}},
		{name: "sqlite with data dir", config: Config{Backend: BackendSQLite, DataDir: "/tmp/data"}},
		{name: "sqlite without data dir uses the working directory", config: Config{Backend: BackendSQLite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
