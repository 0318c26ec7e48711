// Package classify assigns candidate articles to marketing-intent
// categories by ordered substring keyword matching.
package classify

import "strings"

// Category defines one marketing-intent category. Categories are evaluated
// in slice order and keywords in list order; the first keyword hit anywhere
// decides the category.
type Category struct {
	ID       string
	Keywords []string
}

// Uncategorized is the implicit bucket for articles matching no keyword.
// It never occupies a named category slot during selection.
const Uncategorized = "OTHER"

// DefaultCategories returns the standard category set for the iDoklad blog,
// in priority order.
func DefaultCategories() []Category {
	return []Category{
		{
			ID:       "ENGAGEMENT",
			Keywords: []string{"tip", "trik", "příběh", "trend", "nej", "inspir"},
		},
		{
			ID:       "CONVERSION",
			Keywords: []string{"tarif", "funkc", "premium", "automat", "online platb", "api", "propojení"},
		},
		{
			ID:       "EDUCATIONAL",
			Keywords: []string{"jak", "průvodce", "návod", "začínaj", "krok", "vysvětlen"},
		},
		{
			// Month names are deliberately bare stems so inflected forms
			// ("lednová uzávěrka") still match.
			ID: "SEASONAL",
			Keywords: []string{
				"daň", "dph", "silvestr", "váno", "uzávěr", "přiznání",
				"leden", "únor", "březen", "duben", "květen", "červen",
				"červenec", "srpen", "září", "říjen", "listopad", "prosinec",
			},
		},
	}
}

// Classify maps a title+summary pair to the first category any of whose
// keywords occurs as a case-insensitive substring of the combined text.
// Matching is first-match by category priority, not best-match: a text
// hitting keywords of two categories lands in the earlier one. The second
// return value is false when nothing matched (uncategorized).
//
// Substring matching can fire inside longer unrelated words; that is an
// accepted limitation of the keyword lists, not something to guard against
// here.
func Classify(categories []Category, title, summary string) (string, bool) {
	text := strings.ToLower(title + " " + summary)
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				return cat.ID, true
			}
		}
	}
	return "", false
}
