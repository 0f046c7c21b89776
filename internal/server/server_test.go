package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reindex/internal/schema"
	"github.com/mesh-intelligence/reindex/internal/store"
	"github.com/mesh-intelligence/reindex/pkg/types"
)

func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	b := store.NewBackend(log)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	_, err := b.CreateType(context.Background(), types.TypeDefinition{
		Name:   "Note",
		Fields: []types.FieldDefinition{{Name: "text", Type: types.FieldTypeString}},
	})
	require.NoError(t, err)

	meta, err := b.GetMetadata(context.Background())
	require.NoError(t, err)
	s, err := schema.CreateSchema(meta)
	require.NoError(t, err)
	return New(schema.NewExecutor(s, b, log), log)
}

func TestHealth(t *testing.T) {
	h := setupHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGraphQL(t *testing.T) {
	h := setupHandler(t)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
		return rec
	}

	t.Run("executes a mutation then a query", func(t *testing.T) {
		rec := post(`{"query":"mutation { createNote(input: {note: {text: \"hi\"}}) { id } }"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		rec = post(`{"query":"{ allNotes { count nodes { text } } }"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Data struct {
				AllNotes struct {
					Count int `json:"count"`
					Nodes []struct {
						Text string `json:"text"`
					} `json:"nodes"`
				} `json:"allNotes"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Data.AllNotes.Count)
		require.Len(t, got.Data.AllNotes.Nodes, 1)
		assert.Equal(t, "hi", got.Data.AllNotes.Nodes[0].Text)
	})

	t.Run("passes variables", func(t *testing.T) {
		rec := post(`{"query":"query ($id: ID!) { getNote(id: $id) { text } }","variables":{"id":"` +
			types.ID{Type: "Note", Value: "missing"}.String() + `"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"getNote":null}}`, rec.Body.String())
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		rec := post(`{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
