package main

import (
	"os"

	"github.com/msto63/ecsfault/cmd/ecsfault/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
