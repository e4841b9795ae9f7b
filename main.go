package main

import (
	"os"

	"github.com/legisverde/legisverde/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
