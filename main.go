package main

import (
	"os"

	"github.com/rsavchuk/talentflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
