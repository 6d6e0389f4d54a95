package main

import (
	"os"

	"github.com/abhisek/smartprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
