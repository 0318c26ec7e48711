// Package period enumerates the calendar months a selection can target.
package period

import (
	"iter"
	"time"

	"mailmix/internal/core"
)

// anchorDay is the day of month the reference date is pinned to before
// stepping backward. Mid-month anchoring keeps the walk immune to variable
// month lengths: stepping from the 29th-31st could skip or repeat a month.
const anchorDay = 15

// Walk returns a lazy, restartable sequence of n periods stepping backward
// one month at a time from ref's month (ref's month first). Year boundaries
// roll over, December to January of the prior year.
func Walk(ref time.Time, n int) iter.Seq[core.Period] {
	return func(yield func(core.Period) bool) {
		anchor := time.Date(ref.Year(), ref.Month(), anchorDay, 0, 0, 0, 0, time.UTC)
		for i := 0; i < n; i++ {
			if !yield(core.PeriodOf(anchor)) {
				return
			}
			anchor = anchor.AddDate(0, -1, 0)
		}
	}
}

// Trailing collects Walk(ref, n) into a slice, most recent period first.
func Trailing(ref time.Time, n int) []core.Period {
	periods := make([]core.Period, 0, n)
	for p := range Walk(ref, n) {
		periods = append(periods, p)
	}
	return periods
}
