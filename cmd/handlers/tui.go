package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailmix/internal/app"
	"mailmix/internal/config"
	"mailmix/internal/tui"
)

// NewTUICmd creates the interactive session command
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive selection session",
		Long: `Interactive terminal session: pick the target month, toggle the
"include previously used articles" option, preview the mix, and confirm to
record the selection and display the composed email.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

func runTUI() error {
	svc, err := app.NewService(config.Get())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return tui.Run(svc)
}
