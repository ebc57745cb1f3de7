package main

import (
	"os"

	"github.com/spec-kit/event-marketplace/cmd/eventctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
