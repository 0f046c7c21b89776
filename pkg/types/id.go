package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ID identifies a row: the logical type name it belongs to and the opaque
// key of the row inside that type's table.
type ID struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// String returns the opaque text form handed to GraphQL clients.
func (id ID) String() string {
	return base64.StdEncoding.EncodeToString([]byte(id.Type + ":" + id.Value))
}

// ParseID decodes the text form produced by ID.String.
func ParseID(s string) (ID, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	typeName, value, ok := strings.Cut(string(raw), ":")
	if !ok || typeName == "" || value == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	return ID{Type: typeName, Value: value}, nil
}

// IDFromValue converts a value read back from a JSON document into an ID.
// Stored references decode as maps; text forms and ID values are accepted too.
func IDFromValue(v any) (ID, bool) {
	switch val := v.(type) {
	case ID:
		return val, true
	case *ID:
		if val == nil {
			return ID{}, false
		}
		return *val, true
	case map[string]any:
		typeName, _ := val["type"].(string)
		value, _ := val["value"].(string)
		if typeName == "" || value == "" {
			return ID{}, false
		}
		return ID{Type: typeName, Value: value}, true
	case string:
		id, err := ParseID(val)
		if err != nil {
			return ID{}, false
		}
		return id, true
	default:
		return ID{}, false
	}
}

// IsValidID reports whether id may address a row of typeName.
func IsValidID(typeName string, id *ID) bool {
	if id == nil {
		return false
	}
	return id.Type == typeName && id.Value != ""
}
