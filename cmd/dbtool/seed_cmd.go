package main

import (
	"fmt"
	"os"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/dto"
	"github.com/NamelessIII/api-webscrap/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		dias    int
		ate     string
		semente int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo products, pharmacies and price history into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := seed.Options{Dias: dias, Semente: semente}
			if ate != "" {
				t, err := dto.ParseData(ate)
				if err != nil {
					return fmt.Errorf("--ate: %w", err)
				}
				opts.Ate = t
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			stats, err := seed.Run(cmd.Context(), db, opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "seeded %d produtos, %d farmacias, %d precos\n",
				stats.Produtos, stats.Farmacias, stats.Precos)
			return nil
		},
	}

	cmd.Flags().IntVar(&dias, "dias", 90, "Days of price history per product/pharmacy pair")
	cmd.Flags().StringVar(&ate, "ate", "", "Last day of history (YYYY-MM-DD, default today)")
	cmd.Flags().Int64Var(&semente, "semente", time.Now().UnixNano(), "Random seed for generated prices")

	return cmd
}
