package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags at build time.
var (
	version = "v0.0.1-dev"
	commit  = "none"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fold version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fold %s (commit %s)\n", version, commit)
			return err
		},
	}
}
