// Package selection picks the balanced article mix for one target period.
package selection

import (
	"sort"

	"mailmix/internal/classify"
	"mailmix/internal/core"
	"mailmix/internal/history"
)

// Select produces the ordered mix of at most maxArticles articles for the
// period: first one slot per category in priority order, then overflow by
// recency.
//
// The pool is the subset of articles published within the period whose URL
// is not already recorded in the history for that period (the whole history
// is ignored when ignoreHistory is set). The pool is walked once in
// publish-date-descending order; the first article matching each still-open
// category fills that slot, everything else (uncategorized, or category
// already filled) becomes overflow in the same order. Fewer qualifying
// articles than maxArticles yield a shorter result, never padding; an empty
// result is a normal outcome, not an error.
func Select(articles []core.Article, rec history.Record, p core.Period, ignoreHistory bool, categories []classify.Category, maxArticles int) []core.SelectedArticle {
	used := map[string]struct{}{}
	if !ignoreHistory {
		used = history.UsedSet(rec, p.Key())
	}

	pool := make([]core.Article, 0, len(articles))
	for _, a := range articles {
		if !p.Contains(a.Published) {
			continue
		}
		if _, ok := used[a.URL]; ok {
			continue
		}
		pool = append(pool, a)
	}

	// Most recent first; feed order breaks ties.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Published.After(pool[j].Published)
	})

	slots := make(map[string]core.Article, len(categories))
	var overflow []core.Article
	for _, a := range pool {
		cat, ok := classify.Classify(categories, a.Title, a.Summary)
		if ok {
			if _, filled := slots[cat]; !filled {
				slots[cat] = a
				continue
			}
		}
		overflow = append(overflow, a)
	}

	result := make([]core.SelectedArticle, 0, maxArticles)
	for _, cat := range categories {
		if a, ok := slots[cat.ID]; ok {
			result = append(result, core.SelectedArticle{Article: a, Category: cat.ID})
		}
	}
	for _, a := range overflow {
		if len(result) >= maxArticles {
			break
		}
		result = append(result, core.SelectedArticle{Article: a})
	}

	if len(result) > maxArticles {
		result = result[:maxArticles]
	}
	return result
}

// URLs extracts the selection's links in result order.
func URLs(selected []core.SelectedArticle) []string {
	urls := make([]string, len(selected))
	for i, s := range selected {
		urls[i] = s.Article.URL
	}
	return urls
}
