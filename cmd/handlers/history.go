package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailmix/internal/config"
	"mailmix/internal/core"
	"mailmix/internal/history"
)

// NewHistoryCmd creates the selection-history management command
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or reset the selection history",
	}

	historyCmd.AddCommand(newHistoryShowCmd())
	historyCmd.AddCommand(newHistoryClearCmd())

	return historyCmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List previously used article links per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow()
		},
	}
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole selection history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear()
		},
	}
}

func runHistoryShow() error {
	store := history.NewStore(config.Get().HistoryPath())
	rec := store.Load()

	if len(rec) == 0 {
		fmt.Println("(prázdná)")
		return nil
	}

	for _, key := range history.Keys(rec) {
		label := key
		if p, err := core.ParsePeriodKey(key); err == nil {
			label = p.String()
		}
		fmt.Printf("%s\n", label)
		for _, link := range rec[key] {
			fmt.Printf("  - %s\n", link)
		}
	}
	return nil
}

func runHistoryClear() error {
	store := history.NewStore(config.Get().HistoryPath())
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("Historie smazána.")
	return nil
}
