package main

import (
	"os"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
