// Package feeds fetches candidate articles from the configured blog feed
// and normalizes them into core records.
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"mailmix/internal/core"
	"mailmix/internal/logger"
)

// FetchError reports a failed feed fetch: transport error, timeout,
// non-2xx response, or an unparseable feed body. It is the only
// run-halting ingestion failure; data-quality drops are silent.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves and normalizes the blog feed.
type Fetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	feedURL   string
	userAgent string
}

// NewFetcher creates a fetcher for the given feed URL with a bounded
// request timeout.
func NewFetcher(feedURL, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		parser:    gofeed.NewParser(),
		feedURL:   feedURL,
		userAgent: userAgent,
	}
}

// Fetch retrieves the feed and returns its well-formed entries. Every call
// hits the origin: a fresh nocache query parameter defeats transport-level
// caches (some feed hosts ignore Cache-Control, so a unique value per
// request is the only reliable bypass). Entries without a link or with an
// unparseable publish date are dropped silently. Transport and parse
// failures return a *FetchError and no partial results.
func (f *Fetcher) Fetch(ctx context.Context) ([]core.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cacheBusted(f.feedURL), nil)
	if err != nil {
		return nil, &FetchError{URL: f.feedURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.feedURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: f.feedURL, Err: fmt.Errorf("feed returned status %d", resp.StatusCode)}
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.feedURL, Err: fmt.Errorf("failed to parse feed: %w", err)}
	}

	articles := make([]core.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			logger.Debug("Dropping feed entry without link", "title", item.Title)
			continue
		}

		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published == nil {
			logger.Debug("Dropping feed entry without parseable date", "link", link)
			continue
		}

		// Keep the timestamp's own offset: the calendar date as stamped
		// decides which month an article belongs to, and converting to
		// UTC would shift entries published shortly after midnight into
		// the previous month.
		articles = append(articles, core.Article{
			Title:     strings.TrimSpace(item.Title),
			URL:       link,
			Published: *published,
			Summary:   stripMarkup(item.Description),
		})
	}

	return articles, nil
}

// cacheBusted appends a unique nocache parameter to the feed URL.
func cacheBusted(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return feedURL
	}
	q := u.Query()
	q.Set("nocache", uuid.NewString())
	u.RawQuery = q.Encode()
	return u.String()
}

// stripMarkup extracts plain text from a feed summary that may carry HTML.
// Classification keywords must match the prose, not tag soup.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
