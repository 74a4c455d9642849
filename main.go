package main

import (
	"os"

	"github.com/adalundhe/collectc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
