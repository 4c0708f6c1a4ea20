// Package main is the entry point for the bikeshare CLI
package main

import (
	"os"

	"github.com/02loveslollipop/bikeshare-dashboard/services/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
