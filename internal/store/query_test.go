package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

func TestQuerySelectSQL(t *testing.T) {
	tests := []struct {
		name     string
		query    *Query
		dialect  dialect
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "sqlite unfiltered",
			query:   NewQuery("User"),
			dialect: sqliteDialect{},
			wantSQL: `SELECT id, data FROM "User" ORDER BY id ASC`,
		},
		{
			name:     "sqlite field filter and key filter",
			query:    NewQuery("User").Filter([]string{"handle"}, "ada").Filter([]string{"id"}, "k1"),
			dialect:  sqliteDialect{},
			wantSQL:  `SELECT id, data FROM "User" WHERE json_extract(data, '$."handle"') = json_extract(?, '$') AND id = ? ORDER BY id ASC`,
			wantArgs: []any{`"ada"`, "k1"},
		},
		{
			name:     "postgres nested path",
			query:    NewQuery("User").Filter([]string{"profile", "city"}, "Oslo"),
			dialect:  postgresDialect{},
			wantSQL:  `SELECT id, data FROM "User" WHERE data #> '{profile,city}' = $1::jsonb ORDER BY id ASC`,
			wantArgs: []any{`"Oslo"`},
		},
		{
			name:    "null filter",
			query:   NewQuery("User").Filter([]string{"handle"}, nil),
			dialect: postgresDialect{},
			wantSQL: `SELECT id, data FROM "User" WHERE data #> '{handle}' IS NULL ORDER BY id ASC`,
		},
		{
			name:    "order by field with limit and skip",
			query:   NewQuery("ReindexType").OrderBy("name").Limit(5).Skip(10),
			dialect: sqliteDialect{},
			wantSQL: `SELECT id, data FROM "ReindexType" ORDER BY json_extract(data, '$."name"') ASC, id ASC LIMIT 5 OFFSET 10`,
		},
		{
			name:    "sqlite skip without limit",
			query:   NewQuery("User").Skip(3),
			dialect: sqliteDialect{},
			wantSQL: `SELECT id, data FROM "User" ORDER BY id ASC LIMIT -1 OFFSET 3`,
		},
		{
			name:     "postgres cursors",
			query:    NewQuery("User").After("a").Before("z"),
			dialect:  postgresDialect{},
			wantSQL:  `SELECT id, data FROM "User" WHERE id > $1 AND id < $2 ORDER BY id ASC`,
			wantArgs: []any{"a", "z"},
		},
		{
			name:    "last window",
			query:   NewQuery("User").Last(2),
			dialect: sqliteDialect{},
			wantSQL: `SELECT id, data FROM (SELECT id, data FROM (SELECT id, data FROM "User" ORDER BY id ASC) AS page ORDER BY id DESC LIMIT 2) AS tail ORDER BY id ASC`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.query.selectSQL(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestQueryCountSQL(t *testing.T) {
	sql, args, err := NewQuery("User").Filter([]string{"age"}, 3).Limit(1).countSQL(postgresDialect{})
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM (SELECT id, data FROM "User" WHERE data #> '{age}' = $1::jsonb ORDER BY id ASC LIMIT 1) AS counted`, sql)
	assert.Equal(t, []any{"3"}, args)
}

func TestQueryRejectsUnsafeNames(t *testing.T) {
	_, _, err := NewQuery("User; --").selectSQL(sqliteDialect{})
	assert.ErrorIs(t, err, types.ErrInvalidTable)

	_, _, err = NewQuery("User").Filter([]string{"a'b"}, 1).selectSQL(sqliteDialect{})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, _, err = NewQuery("User").OrderBy("x y").selectSQL(sqliteDialect{})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestQueryBuildersDoNotShareState(t *testing.T) {
	base := NewQuery("User").Filter([]string{"a"}, 1)
	narrowed := base.Filter([]string{"b"}, 2)

	baseSQL, _, err := base.selectSQL(sqliteDialect{})
	require.NoError(t, err)
	narrowedSQL, _, err := narrowed.selectSQL(sqliteDialect{})
	require.NoError(t, err)
	assert.NotContains(t, baseSQL, `"b"`)
	assert.Contains(t, narrowedSQL, `"b"`)
	assert.Equal(t, "User", narrowed.Table())
}
