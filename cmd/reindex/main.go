// Package main is the entry point of the reindex CLI.
package main

import "github.com/mesh-intelligence/reindex/internal/cli"

func main() {
	cli.Execute()
}
