// Package reindex holds release information for the reindex module.
package reindex

// Version is the release of the reindex binary and library.
const Version = "0.1.0"
