package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mailmix/internal/config"
	"mailmix/internal/logger"
)

var cfgFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mailmix",
		Short: "Pick a strategic mix of blog articles for the monthly mailing",
		Long: `Mailmix - Strategic Blog Article Picker

Selects a small, diverse set of blog article links for the recurring
monthly email digest, one article per marketing category when possible,
while remembering which links were already used.

Examples:
  # Interactive session (period picker, preview, confirm)
  mailmix tui

  # One-shot preview for the current month
  mailmix pick

  # Commit a selection for March 2024 and print the email
  mailmix pick --period 2024-03 --yes

  # Inspect or reset the selection history
  mailmix history show
  mailmix history clear`,
		Version: "1.0.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation starts the interactive session.
			return runTUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .mailmix.yaml)")

	rootCmd.AddCommand(NewPickCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewTUICmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		return
	}
	if cfg.App.Debug {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel(cfg.App.LogLevel)
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
