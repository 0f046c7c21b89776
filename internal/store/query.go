package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Query is a read against a single table. Builder methods return a modified
// copy, so a Query can be shared and refined by several resolvers.
type Query struct {
	table   string
	filters []filter
	order   []string
	desc    bool
	after   string
	before  string
	limit   int
	offset  int
	last    int
}

type filter struct {
	path  []string
	value any
}

// NewQuery returns the unfiltered query over table.
func NewQuery(table string) *Query {
	return &Query{table: table}
}

// Table returns the name of the table the query reads.
func (q *Query) Table() string {
	return q.table
}

func (q *Query) clone() *Query {
	c := *q
	c.filters = append([]filter(nil), q.filters...)
	c.order = append([]string(nil), q.order...)
	return &c
}

// Filter keeps rows whose field at path equals value. A single-segment path
// naming "id" compares the row key.
func (q *Query) Filter(path []string, value any) *Query {
	c := q.clone()
	c.filters = append(c.filters, filter{path: append([]string(nil), path...), value: value})
	return c
}

// OrderBy sorts by the field at path. Without an order, rows sort by key.
func (q *Query) OrderBy(path ...string) *Query {
	c := q.clone()
	c.order = append([]string(nil), path...)
	return c
}

// Desc reverses the sort order.
func (q *Query) Desc() *Query {
	c := q.clone()
	c.desc = true
	return c
}

// After keeps rows whose key sorts after cursor.
func (q *Query) After(cursor string) *Query {
	c := q.clone()
	c.after = cursor
	return c
}

// Before keeps rows whose key sorts before cursor.
func (q *Query) Before(cursor string) *Query {
	c := q.clone()
	c.before = cursor
	return c
}

// Limit caps the number of rows. Zero means no cap.
func (q *Query) Limit(n int) *Query {
	c := q.clone()
	c.limit = n
	return c
}

// Skip drops the first n rows.
func (q *Query) Skip(n int) *Query {
	c := q.clone()
	c.offset = n
	return c
}

// Last keeps only the final n rows of the ordered, limited result.
func (q *Query) Last(n int) *Query {
	c := q.clone()
	c.last = n
	return c
}

// args accumulates bind parameters and hands out placeholders.
type args struct {
	d    dialect
	vals []any
}

func (a *args) add(v any) string {
	a.vals = append(a.vals, v)
	return a.d.placeholder(len(a.vals))
}

func isKeyPath(path []string) bool {
	return len(path) == 1 && path[0] == "id"
}

// where renders the WHERE clause, without the keyword.
func (q *Query) where(a *args) (string, error) {
	var conds []string
	for _, f := range q.filters {
		if isKeyPath(f.path) {
			key, ok := f.value.(string)
			if !ok {
				return "", fmt.Errorf("filter on id needs a string key, got %T", f.value)
			}
			conds = append(conds, "id = "+a.add(key))
			continue
		}
		if err := checkPath(f.path); err != nil {
			return "", err
		}
		if f.value == nil {
			conds = append(conds, a.d.fieldValue(f.path)+" IS NULL")
			continue
		}
		raw, err := json.Marshal(f.value)
		if err != nil {
			return "", fmt.Errorf("encoding filter value: %w", err)
		}
		conds = append(conds, a.d.fieldValue(f.path)+" = "+a.d.jsonValue(a.add(string(raw))))
	}
	if q.after != "" {
		conds = append(conds, "id > "+a.add(q.after))
	}
	if q.before != "" {
		conds = append(conds, "id < "+a.add(q.before))
	}
	return strings.Join(conds, " AND "), nil
}

func (q *Query) orderTerms(d dialect) ([]string, error) {
	if len(q.order) == 0 || isKeyPath(q.order) {
		return []string{"id"}, nil
	}
	if err := checkPath(q.order); err != nil {
		return nil, err
	}
	// Ties on the field fall back to key order so windows are stable.
	return []string{d.fieldValue(q.order), "id"}, nil
}

func direction(desc bool) string {
	if desc {
		return " DESC"
	}
	return " ASC"
}

// withDirection renders an ORDER BY list with every term sorted the same way.
func withDirection(terms []string, desc bool) string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = term + direction(desc)
	}
	return strings.Join(out, ", ")
}

// selectSQL renders the query as SELECT id, data.
func (q *Query) selectSQL(d dialect) (string, []any, error) {
	if err := checkTable(q.table); err != nil {
		return "", nil, err
	}
	a := &args{d: d}
	where, err := q.where(a)
	if err != nil {
		return "", nil, err
	}
	order, err := q.orderTerms(d)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT id, data FROM ")
	b.WriteString(quote(q.table))
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(withDirection(order, q.desc))
	if q.limit > 0 {
		b.WriteString(" LIMIT " + strconv.Itoa(q.limit))
	} else if q.offset > 0 && d.driverName() == "sqlite" {
		// SQLite only accepts OFFSET after a LIMIT clause.
		b.WriteString(" LIMIT -1")
	}
	if q.offset > 0 {
		b.WriteString(" OFFSET " + strconv.Itoa(q.offset))
	}
	if q.last <= 0 {
		return b.String(), a.vals, nil
	}

	// Take the tail by reversing, limiting, then restoring the order.
	inner := "SELECT id, data FROM (" + b.String() + ") AS page ORDER BY " +
		withDirection(order, !q.desc) + " LIMIT " + strconv.Itoa(q.last)
	return "SELECT id, data FROM (" + inner + ") AS tail ORDER BY " +
		withDirection(order, q.desc), a.vals, nil
}

// countSQL renders a count of the rows selectSQL would return.
func (q *Query) countSQL(d dialect) (string, []any, error) {
	sel, vals, err := q.selectSQL(d)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM (" + sel + ") AS counted", vals, nil
}
