package main

import (
	"os"

	"github.com/hnrobert/envportal/cmd/envportald/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
