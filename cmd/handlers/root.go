package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bizplan/internal/config"
	"bizplan/internal/logger"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bizplan",
		Short: "Generate structured business plans from a short form.",
		Long: `bizplan turns a business idea form into a complete, ten-section business
plan. When a Gemini API key is configured the plan is drafted by the model
and normalized into a fixed structure; otherwise only the fields taken from
the form are filled.

Plans can be generated from the command line, served over HTTP, and browsed
in the terminal.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.bizplan.yaml or $HOME/.bizplan.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewNormalizeCmd())
	rootCmd.AddCommand(NewViewCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if cfg.App.Debug {
		level = "debug"
	}
	logger.Configure(level, cfg.Logging.Format)
}
