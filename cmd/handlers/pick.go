package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mailmix/internal/app"
	"mailmix/internal/classify"
	"mailmix/internal/config"
	"mailmix/internal/core"
	"mailmix/internal/logger"
)

// NewPickCmd creates the one-shot selection command
func NewPickCmd() *cobra.Command {
	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Select the article mix for one month",
		Long: `Fetch the blog feed, select the balanced article mix for the target
month and print it. With --yes the selection is committed to history and
the composed email is printed for manual copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			periodFlag, _ := cmd.Flags().GetString("period")
			includeUsed, _ := cmd.Flags().GetBool("include-used")
			confirm, _ := cmd.Flags().GetBool("yes")
			return runPick(periodFlag, includeUsed, confirm)
		},
	}

	pickCmd.Flags().String("period", "", "target month as YYYY-MM (default: current month)")
	pickCmd.Flags().Bool("include-used", false, "ignore the selection history (previously used links become eligible again)")
	pickCmd.Flags().Bool("yes", false, "confirm the selection: record it in history and print the email")

	return pickCmd
}

func runPick(periodFlag string, includeUsed, confirm bool) error {
	cfg := config.Get()
	svc, err := app.NewService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	p := core.PeriodOf(time.Now())
	if periodFlag != "" {
		p, err = core.ParsePeriodKey(periodFlag)
		if err != nil {
			return err
		}
	}

	articles, err := svc.Fetch(context.Background())
	if err != nil {
		// Transport failure halts the run; nothing was written.
		return err
	}
	logger.Debug("Fetched candidate articles", "count", len(articles))

	selected := svc.Select(articles, p, includeUsed)
	if len(selected) == 0 {
		fmt.Printf("Pro měsíc %s nejsou dostupné články.\n", p)
		return nil
	}

	fmt.Printf("✉️  Vybraný mix článků – %s\n", p)
	fmt.Println(strings.Repeat("=", 40))
	for _, s := range selected {
		cat := s.Category
		if cat == "" {
			cat = classify.Uncategorized
		}
		cat = strings.ToLower(cat)
		fmt.Printf("• %s\n  (%s, %s)\n  %s\n", s.Article.Title, cat,
			s.Article.Published.Format("02.01.2006"), s.Article.URL)
	}

	if !confirm {
		fmt.Println("\nSpusť znovu s --yes pro zápis do historie a vygenerování e-mailu.")
		return nil
	}

	subject, body, err := svc.Confirm(selected, p, includeUsed)
	if err != nil {
		return fmt.Errorf("failed to compose email: %w", err)
	}

	fmt.Println("\nE-mail byl vygenerován!")
	fmt.Printf("\nPředmět: %s\n\n%s\n", subject, body)
	return nil
}
