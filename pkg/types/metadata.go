package types

// Index asks the store to index a type's table on one or more field paths.
type Index struct {
	ID     *ID        `json:"id,omitempty"`
	Type   string     `json:"type"`
	Name   string     `json:"name"`
	Fields [][]string `json:"fields"`
}

// Hook is a stored callback registration. Hooks are kept as metadata only.
type Hook struct {
	ID       *ID    `json:"id,omitempty"`
	Type     string `json:"type"`
	Trigger  string `json:"trigger"`
	URL      string `json:"url"`
	Fragment string `json:"fragment,omitempty"`
}

// Secret is a signing secret stored in ReindexSecret.
type Secret struct {
	ID    *ID    `json:"id,omitempty"`
	Value string `json:"value"`
}

// Metadata is the full set of schema-describing rows, read together.
type Metadata struct {
	Types   []TypeDefinition `json:"types"`
	Indexes []Index          `json:"indexes"`
	Hooks   []Hook           `json:"hooks"`
}

// Type returns the definition with the given name.
func (m Metadata) Type(name string) (TypeDefinition, bool) {
	for _, t := range m.Types {
		if t.Name == name {
			return t, true
		}
	}
	return TypeDefinition{}, false
}
