package main

import (
	"os"

	"github.com/dalemusser/rulebook/internal/rulebookcli"
)

func main() {
	os.Exit(rulebookcli.Run("rulebook", os.Args[1:]))
}
