package main

import (
	"os"

	"github.com/aretw0/fsmd/internal/presentation/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		tui.NewPrinter(os.Stderr).Error(err)
		os.Exit(1)
	}
}
