package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mailmix/internal/config"
	"mailmix/internal/core"
	"mailmix/internal/feeds"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Blog</title>
<item>
  <title>Tip pro podnikatele</title>
  <link>https://example.com/tip</link>
  <pubDate>Sun, 10 Mar 2024 08:00:00 +0000</pubDate>
  <description>Tipy.</description>
</item>
<item>
  <title>Premium funkce</title>
  <link>https://example.com/premium</link>
  <pubDate>Sat, 02 Mar 2024 08:00:00 +0000</pubDate>
  <description>Novinky v tarifu.</description>
</item>
</channel>
</rss>`

func testConfig(t *testing.T, feedURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Feed: config.Feed{
			URL:       feedURL,
			UserAgent: "mailmix-test/1.0",
			Timeout:   "5s",
		},
		History: config.History{
			Path: filepath.Join(t.TempDir(), "sent_posts.json"),
		},
		Select: config.Select{
			MaxArticles:  4,
			MonthsToShow: 3,
		},
		Categories: []config.Category{
			{ID: "ENGAGEMENT", Keywords: []string{"tip"}},
			{ID: "CONVERSION", Keywords: []string{"premium"}},
		},
	}
}

func newTestService(t *testing.T, feedURL string) *Service {
	t.Helper()
	svc, err := NewService(testConfig(t, feedURL))
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testRSS))
	}))
	t.Cleanup(server.Close)
	return server
}

var march = core.Period{Year: 2024, Month: time.March}

func TestFullPass(t *testing.T) {
	svc := newTestService(t, newFeedServer(t).URL)

	articles, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Fetch returned %d articles, want 2", len(articles))
	}

	selected := svc.Select(articles, march, false)
	if len(selected) != 2 {
		t.Fatalf("Select returned %d articles, want 2", len(selected))
	}
	if selected[0].Category != "ENGAGEMENT" || selected[1].Category != "CONVERSION" {
		t.Errorf("Unexpected categories: %q, %q", selected[0].Category, selected[1].Category)
	}

	subject, body, err := svc.Confirm(selected, march, false)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !strings.Contains(subject, "březen 2024") {
		t.Errorf("subject = %q, want Czech month and year", subject)
	}
	if !strings.Contains(body, "https://example.com/tip") {
		t.Errorf("body missing selected link")
	}

	// The next pass must exclude the confirmed URLs.
	again := svc.Select(articles, march, false)
	if len(again) != 0 {
		t.Errorf("Selection after Confirm should be empty, got %d articles", len(again))
	}
}

func TestConfirmSkipsHistoryWhenIgnoring(t *testing.T) {
	svc := newTestService(t, newFeedServer(t).URL)

	articles, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	selected := svc.Select(articles, march, true)
	if _, _, err := svc.Confirm(selected, march, true); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	if rec := svc.History(); len(rec) != 0 {
		t.Errorf("Confirm with ignore_history must not write history, got %v", rec)
	}
}

func TestFetchErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	_, err := svc.Fetch(context.Background())
	var fetchErr *feeds.FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("Fetch should surface *feeds.FetchError, got %v", err)
	}
	if rec := svc.History(); len(rec) != 0 {
		t.Errorf("Failed fetch must leave history untouched, got %v", rec)
	}
}

func TestClearHistory(t *testing.T) {
	svc := newTestService(t, newFeedServer(t).URL)

	articles, _ := svc.Fetch(context.Background())
	selected := svc.Select(articles, march, false)
	if _, _, err := svc.Confirm(selected, march, false); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if len(svc.History()) == 0 {
		t.Fatal("Expected history after Confirm")
	}

	if err := svc.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if rec := svc.History(); len(rec) != 0 {
		t.Errorf("History after clear should be empty, got %v", rec)
	}
}

func TestPeriods(t *testing.T) {
	svc := newTestService(t, newFeedServer(t).URL)

	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	periods := svc.Periods(now)
	if len(periods) != 3 {
		t.Fatalf("Periods returned %d, want 3", len(periods))
	}
	if periods[0] != (core.Period{Year: 2025, Month: time.January}) {
		t.Errorf("First period = %v, want current month", periods[0])
	}
	if periods[2] != (core.Period{Year: 2024, Month: time.November}) {
		t.Errorf("Last period = %v, want 2024 November", periods[2])
	}
}
