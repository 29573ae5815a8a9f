package main

import (
	"os"

	"github.com/Mario-Kart-Felix/orogene/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
