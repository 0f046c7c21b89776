// Package types defines the identifiers, stored records, configuration and
// error values shared by the reindex store, schema and CLI.
package types
