package main

import (
	"os"

	"github.com/loomstack-labs/specloom/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
