package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/shopdex/internal/version"
)

func newRootCmd() *cobra.Command {
	var envName string

	root := &cobra.Command{
		Use:     "shopdex",
		Short:   "Product catalogue search service",
		Version: version.Version,
		Long: `shopdex serves a product catalogue over HTTP backed by Redis Stack
(RedisJSON documents indexed by RediSearch).

Running shopdex without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envName)
		},
	}
	root.PersistentFlags().StringVar(&envName, "env", "", "config environment (default: $ENV or local)")

	root.AddCommand(
		newServeCmd(&envName),
		newIndexCmd(&envName),
		newSeedCmd(&envName),
		newVersionCmd(),
	)
	return root
}
