package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bizplan/internal/config"
	"bizplan/internal/logger"
	"bizplan/internal/pipeline"
	"bizplan/internal/store"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var (
		input   string
		asJSON  bool
		save    bool
		noAI    bool
		showRaw bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a business plan from a form file",
		Long: `Generate a business plan from a YAML or JSON form.

The form uses the same keys as the HTTP API (businessName, industry,
businessType, location, businessConcept, targetMarket,
uniqueValue, startupCosts, expectedRevenue, keyMilestones).

Examples:
  bizplan generate --input form.yaml
  bizplan generate --input form.json --json --save
  cat form.yaml | bizplan generate --input - --no-ai`,
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
			if noAI {
				useAI := false
				in.UseAI = &useAI
			}

			p := pipeline.NewBuilder().FromAppConfig(ctx, cfg).Build()
			defer p.Close()

			result := p.Generate(ctx, in)

			if save {
				plans, err := store.New(ctx, cfg.Store)
				if err != nil {
					return fmt.Errorf("failed to open plan store: %w", err)
				}
				defer plans.Close()
				if err := plans.Save(ctx, *result); err != nil {
					return fmt.Errorf("failed to save plan: %w", err)
				}
				logger.Info("Plan saved", "plan_id", result.ID, "driver", cfg.Store.Driver)
			}

			if !showRaw {
				result.RawResponse = ""
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printPlan(cmd.OutOrStdout(), result)
			if result.Error != "" {
				fmt.Fprintln(os.Stderr, "warning:", result.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "form file (YAML or JSON, '-' for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "save the plan to the configured store")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip model generation and fill only form fields")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "include the raw model response in JSON output")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
