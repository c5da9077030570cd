package main

import (
	"os"

	"github.com/nhle/loan-checklist/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
