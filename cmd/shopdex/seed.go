package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

func newSeedCmd(envName *string) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in sample catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := bootstrap(ctx, *envName)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.ensureIndex(ctx); err != nil {
				return err
			}

			if reset {
				n, err := a.products.DeleteAll(ctx)
				if err != nil {
					return fmt.Errorf("reset catalogue: %w", err)
				}
				a.logger.Info("Deleted existing products", zap.Int("count", n))
			}

			created, err := a.products.CreateMany(ctx, sampleCatalogue())
			if err != nil {
				return fmt.Errorf("seed catalogue: %w", err)
			}

			// Index updates are synchronous for JSON.SET, so the count reflects the new documents.
			total, err := a.search.Count(ctx, criteria.MatchAll())
			if err != nil {
				return fmt.Errorf("count products: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products, %d indexed\n", len(created), total)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete all products before seeding")

	return cmd
}
