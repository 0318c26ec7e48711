// Package app wires the selection flow into an explicit command surface:
// fetch, select, confirm, clear. Every call takes and returns values; no
// session state hides in here.
package app

import (
	"context"
	"time"

	"mailmix/internal/classify"
	"mailmix/internal/config"
	"mailmix/internal/core"
	"mailmix/internal/email"
	"mailmix/internal/feeds"
	"mailmix/internal/history"
	"mailmix/internal/period"
	"mailmix/internal/selection"
)

// Service executes one synchronous pass per user action over the leaf
// components. The history file is read once per pass and written at most
// once, on Confirm.
type Service struct {
	cfg        *config.Config
	fetcher    *feeds.Fetcher
	store      *history.Store
	composer   *email.Composer
	categories []classify.Category
}

// NewService builds the service from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	composer, err := email.NewComposer(cfg.Email.SubjectTemplate, cfg.Email.BodyTemplate)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:        cfg,
		fetcher:    feeds.NewFetcher(cfg.Feed.URL, cfg.Feed.UserAgent, cfg.FeedTimeout()),
		store:      history.NewStore(cfg.HistoryPath()),
		composer:   composer,
		categories: cfg.ClassifyCategories(),
	}, nil
}

// Fetch retrieves the current candidate articles. A *feeds.FetchError halts
// the caller's pass; nothing is written to history on any fetch outcome.
func (s *Service) Fetch(ctx context.Context) ([]core.Article, error) {
	return s.fetcher.Fetch(ctx)
}

// Periods returns the selectable target periods, current month first.
func (s *Service) Periods(now time.Time) []core.Period {
	return period.Trailing(now, s.cfg.Select.MonthsToShow)
}

// Select computes the article mix for the period against the persisted
// history, which is re-read on every call.
func (s *Service) Select(articles []core.Article, p core.Period, ignoreHistory bool) []core.SelectedArticle {
	rec := s.store.Load()
	return selection.Select(articles, rec, p, ignoreHistory, s.categories, s.cfg.Select.MaxArticles)
}

// Confirm commits a selection: its URLs are appended to the period's
// history (skipped when the run ignored history — recording those would
// poison later filtered runs), then the email is composed. The returned
// subject and body are ready for manual copy.
func (s *Service) Confirm(selected []core.SelectedArticle, p core.Period, ignoreHistory bool) (string, string, error) {
	links := selection.URLs(selected)

	if !ignoreHistory {
		rec := s.store.Load()
		if err := s.store.RecordUsed(rec, p.Key(), links); err != nil {
			return "", "", err
		}
	}

	return s.composer.Compose(links, p)
}

// History returns the persisted record for display.
func (s *Service) History() history.Record {
	return s.store.Load()
}

// ClearHistory removes all persisted history.
func (s *Service) ClearHistory() error {
	return s.store.Clear()
}
