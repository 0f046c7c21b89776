package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

func TestNewBackend(t *testing.T) {
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	defs, err := b.GetTypes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, defs)
}
