package store

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// encodeDocument returns the JSON stored in the data column. The "id" key is
// dropped because the row key is kept in its own column.
func encodeDocument(doc types.Document) (string, error) {
	data := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "id" {
			continue
		}
		data[k] = v
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return string(raw), nil
}

// decodeDocument rebuilds a row read from table, attaching its ID.
func decodeDocument(table, key string, raw []byte) (types.Document, error) {
	doc := types.Document{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s row %s: %w", table, key, err)
		}
	}
	doc["id"] = types.ID{Type: table, Value: key}
	return doc, nil
}

// toDocument converts a typed record into a Document through its JSON form.
func toDocument(v any) (types.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	var doc types.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return doc, nil
}

// fromDocument decodes a Document into a typed record.
func fromDocument(doc types.Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	return nil
}

// merge returns base overlaid with patch. The "id" key of base is kept.
func merge(base, patch types.Document) types.Document {
	out := make(types.Document, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
