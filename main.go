package main

import (
	"os"

	"github.com/frontsea320/Reinf-t2i/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
