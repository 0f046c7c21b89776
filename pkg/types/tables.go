package types

// Metadata table names. User types live in tables named after the type.
const (
	TypeTable   = "ReindexType"
	SecretTable = "ReindexSecret"
	IndexTable  = "ReindexIndex"
	HookTable   = "ReindexHook"
)

// MetadataTableNames lists the tables created on Attach.
var MetadataTableNames = []string{
	TypeTable,
	SecretTable,
	IndexTable,
	HookTable,
}

// IsMetadataTable reports whether name is one of the built-in tables.
func IsMetadataTable(name string) bool {
	for _, t := range MetadataTableNames {
		if t == name {
			return true
		}
	}
	return false
}
