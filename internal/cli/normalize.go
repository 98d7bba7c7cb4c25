package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/usecase"
)

const maxInputBytes = 5 << 20

func newNormalizeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a nutrition record read from a file or stdin",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "input JSON file (default stdin)")

	svc := usecase.NewNormalizationService(nil)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "barcode",
			Short: "Normalize an OpenFoodFacts product record",
			Long: "Normalize an OpenFoodFacts product record. The input may be the bare product " +
				"or the API response envelope with a \"product\" field.",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				raw, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				product, err := decodeProduct(raw)
				if err != nil {
					return err
				}
				result, err := svc.NormalizeProduct(product)
				if err != nil {
					return err
				}
				return printNormalized(cmd, result)
			},
		},
		&cobra.Command{
			Use:   "manual",
			Short: "Normalize a manual entry form",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				raw, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				var entry domain.ManualEntry
				if err := json.Unmarshal(raw, &entry); err != nil {
					return fmt.Errorf("invalid manual entry: %w", err)
				}
				return printNormalized(cmd, svc.NormalizeManual(entry))
			},
		},
		&cobra.Command{
			Use:   "recipe",
			Short: "Normalize a recipe payload",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				raw, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				var recipe domain.Recipe
				if err := json.Unmarshal(raw, &recipe); err != nil {
					return fmt.Errorf("invalid recipe: %w", err)
				}
				result, err := svc.NormalizeRecipe(&recipe)
				if err != nil {
					return err
				}
				return printNormalized(cmd, result)
			},
		},
	)
	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxInputBytes))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("no input: pass --file or pipe JSON on stdin")
	}
	return raw, nil
}

// decodeProduct accepts a bare product or an API response envelope
func decodeProduct(raw []byte) (*domain.OFFProduct, error) {
	var envelope domain.OFFProductResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	if envelope.Product != nil {
		if envelope.Product.Code == "" {
			envelope.Product.Code = envelope.Code
		}
		return envelope.Product, nil
	}

	var product domain.OFFProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	return &product, nil
}

func printNormalized(cmd *cobra.Command, result *usecase.Normalized) error {
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err := fmt.Fprintln(out, RenderLabel(out, result.Label))
	return err
}
