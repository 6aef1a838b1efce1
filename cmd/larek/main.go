package main

import (
	"os"

	"github.com/weblarek/larek/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
