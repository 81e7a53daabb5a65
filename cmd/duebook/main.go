package main

import (
	"os"

	"github.com/duebook-dev/duebook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
