// Package main provides the fold CLI.
package main

import (
	"os"
)

func main() {
	rootCmd := newRootCommand()
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newReduceCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
