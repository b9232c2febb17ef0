package main

import (
	"os"

	"github.com/yash-srivastava19/docstudio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
