package main

import (
	"os"

	"github.com/wonny/rostercast/cmd/rostercast/commands"
)

// main is the entry point for the rostercast CLI
// ⭐ single CLI entry point: go run ./cmd/rostercast [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
