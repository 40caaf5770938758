package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bizplan/internal/config"
	"bizplan/internal/core"
	"bizplan/internal/store"
	"bizplan/internal/tui"
)

// NewViewCmd creates the view command for browsing a saved plan
func NewViewCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "view [plan-id]",
		Short: "Browse a saved business plan in the terminal",
		Long: `Open a saved plan in an interactive terminal viewer. Without an ID the most
recently saved plan is shown. The memory store does not survive between
runs, so configure sqlite, postgres or redis to use this command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Store.Driver == config.DriverMemory {
				return fmt.Errorf("the memory store keeps no plans between runs; set store.driver to sqlite, postgres or redis")
			}

			plans, err := store.New(ctx, cfg.Store)
			if err != nil {
				return fmt.Errorf("failed to open plan store: %w", err)
			}
			defer plans.Close()

			var plan core.PlanResult
			if len(args) == 1 {
				plan, err = plans.Load(ctx, args[0])
			} else {
				plan, err = plans.Latest(ctx)
			}
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no business plan found")
			}
			if err != nil {
				return err
			}

			if plain {
				printPlan(cmd.OutOrStdout(), &plan)
				return nil
			}
			return tui.Run(plan)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the plan instead of opening the viewer")

	return cmd
}
