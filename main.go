package main

import (
	"os"

	"github.com/quantfold/intrinsic/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
