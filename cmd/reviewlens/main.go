package main

import (
	"os"

	"github.com/Dwij1704/Visual-Review-Extractor/cmd/reviewlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
