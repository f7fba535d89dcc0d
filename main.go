package main

import (
	"os"

	"github.com/Nikhil7960/plotpal-ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
