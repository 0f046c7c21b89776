package types

// Document is a schemaless row. After a read its "id" key holds an ID whose
// Type is the name of the table it came from.
//
// Document is an alias so graphql-go's default field resolver, which looks for
// map[string]interface{} sources, reads its keys directly.
type Document = map[string]any

// DocumentID returns the ID stored under the "id" key of doc.
func DocumentID(doc Document) (ID, bool) {
	if doc == nil {
		return ID{}, false
	}
	return IDFromValue(doc["id"])
}

// Edge pairs a node with the cursor that addresses it in a connection.
type Edge struct {
	Node   Document `json:"node"`
	Cursor Cursor   `json:"cursor"`
}

// Cursor marks a position in a connection ordered by row key.
type Cursor struct {
	Value string `json:"value"`
}

// PageInfo describes whether a connection window was cut on either side.
type PageInfo struct {
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}
