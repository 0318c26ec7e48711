package core

import (
	"fmt"
	"time"
	"unicode"
)

// Article represents a single candidate item ingested from the blog feed.
type Article struct {
	Title     string    `json:"title"`     // Article title (may be empty)
	URL       string    `json:"url"`       // Link to the article; identity and dedup key
	Published time.Time `json:"published"` // Publication date from the feed
	Summary   string    `json:"summary"`   // Short summary, used only for classification
}

// Period identifies one calendar month, the unit of both selection and
// history partitioning.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf returns the period the given time falls in.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Key returns the history partition key for the period, e.g. "2024-03".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ParsePeriodKey parses a "YYYY-MM" key back into a Period.
func ParsePeriodKey(key string) (Period, error) {
	var year, month int
	if _, err := fmt.Sscanf(key, "%d-%d", &year, &month); err != nil {
		return Period{}, fmt.Errorf("invalid period key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid period key %q: month out of range", key)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// Contains reports whether t falls within the period's month.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// czechMonths holds Czech month names, indexed 1-12.
var czechMonths = [13]string{
	"",
	"leden", "únor", "březen", "duben", "květen", "červen",
	"červenec", "srpen", "září", "říjen", "listopad", "prosinec",
}

// MonthName returns the Czech name of the period's month.
func (p Period) MonthName() string {
	return czechMonths[int(p.Month)]
}

// String renders the period as a human-readable label, e.g. "Leden 2025".
func (p Period) String() string {
	return fmt.Sprintf("%s %d", capitalize(p.MonthName()), p.Year)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SelectedArticle pairs an article with the category slot it filled.
// Category is empty for overflow picks.
type SelectedArticle struct {
	Article  Article
	Category string
}
