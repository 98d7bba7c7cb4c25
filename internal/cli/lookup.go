package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/platewise/backend/internal/infrastructure/cache"
	"github.com/platewise/backend/internal/infrastructure/openfoodfacts"
	"github.com/platewise/backend/internal/usecase"
)

const defaultOFFBaseURL = "https://world.openfoodfacts.org"

type lookupOptions struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
}

func newLookupCmd() *cobra.Command {
	opts := lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup <barcode> [barcode...]",
		Short: "Look up barcodes on OpenFoodFacts and print their labels",
		Args:  cobra.RangeArgs(1, usecase.MaxBatchBarcodes),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", defaultOFFBaseURL, "OpenFoodFacts base URL")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", "Platewise-CLI/1.0", "User-Agent sent to OpenFoodFacts")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}

func runLookup(cmd *cobra.Command, opts lookupOptions, barcodes []string) error {
	logger := loggerFor(cmd)

	store := cache.NewMemoryCache(time.Hour, logger)
	defer store.Close()

	client := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:   opts.baseURL,
		UserAgent: opts.userAgent,
		Timeout:   opts.timeout,
	}, logger)
	products := usecase.NewProductService(store, client, usecase.ProductServiceConfig{}, logger)

	results, err := products.LookupBatch(cmd.Context(), barcodes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Food == nil {
				fmt.Fprintf(out, "%s: %s\n\n", r.Barcode, r.Error)
				continue
			}
			fmt.Fprintln(out, RenderLabel(out, usecase.LabelFor(r.Food)))
			fmt.Fprintln(out)
		}
	}

	return batchError(results)
}

// batchError fails the command only when no barcode resolved
func batchError(results []usecase.BatchResult) error {
	failed := 0
	var first error
	for _, r := range results {
		if err := r.Err(); err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}
	if failed == len(results) && first != nil {
		if len(results) == 1 {
			return first
		}
		return fmt.Errorf("all %d lookups failed: %w", failed, first)
	}
	return nil
}
