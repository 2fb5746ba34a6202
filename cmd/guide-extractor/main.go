package main

import (
	"os"

	"github.com/adventureatlas/guide-extractor/cmd/guide-extractor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
