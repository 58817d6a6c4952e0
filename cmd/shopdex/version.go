package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/shopdex/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shopdex %s\n", version.String())
		},
	}
}
