package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bizplan/internal/config"
	"bizplan/internal/pipeline"
	"bizplan/internal/store"
)

// NewNormalizeCmd creates the normalize command, which runs a saved model
// response through extraction and normalization without calling the model.
func NewNormalizeCmd() *cobra.Command {
	var (
		input  string
		raw    string
		asJSON bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a saved model response into a business plan",
		Long: `Run extraction and normalization over a model response stored in a file.

This is useful for replaying responses captured with 'generate --json --raw'
or for checking how a hand-written draft maps onto the plan structure.

Examples:
  bizplan normalize --raw response.txt
  bizplan normalize --input form.yaml --raw response.html --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			in, err := readForm(input)
			if err != nil {
				return err
			}
			text, err := readSource(raw)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			result := pipeline.NewBuilder().Build().Process(in, string(text))

			if save {
				plans, err := store.New(ctx, cfg.Store)
				if err != nil {
					return fmt.Errorf("failed to open plan store: %w", err)
				}
				defer plans.Close()
				if err := plans.Save(ctx, *result); err != nil {
					return fmt.Errorf("failed to save plan: %w", err)
				}
			}

			result.RawResponse = ""
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printPlan(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "optional form file supplying seeded fields")
	cmd.Flags().StringVarP(&raw, "raw", "r", "", "file holding the model response ('-' for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "save the plan to the configured store")
	_ = cmd.MarkFlagRequired("raw")

	return cmd
}
