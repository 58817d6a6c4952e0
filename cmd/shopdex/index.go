package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIndexCmd(envName *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the product search index",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create the product index if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), *envName)
			if err != nil {
				return err
			}
			defer a.close()

			created, err := a.productRepo.EnsureIndex(cmd.Context())
			if err != nil {
				return fmt.Errorf("ensure index: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "index %s created\n", a.cfg.Search.IndexName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "index %s already exists\n", a.cfg.Search.IndexName)
			}
			return nil
		},
	})

	var yes bool
	drop := &cobra.Command{
		Use:   "drop",
		Short: "Drop the product index (documents are kept)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop index without --yes")
			}
			a, err := bootstrap(cmd.Context(), *envName)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.productRepo.DropIndex(cmd.Context()); err != nil {
				return fmt.Errorf("drop index: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "index %s dropped\n", a.cfg.Search.IndexName)
			return nil
		},
	}
	drop.Flags().BoolVar(&yes, "yes", false, "confirm dropping the index")
	cmd.AddCommand(drop)

	return cmd
}
