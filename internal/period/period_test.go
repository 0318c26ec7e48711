package period

import (
	"testing"
	"time"

	"mailmix/internal/core"
)

func TestTrailingYearRollover(t *testing.T) {
	ref := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	got := Trailing(ref, 3)
	want := []core.Period{
		{Year: 2025, Month: time.January},
		{Year: 2024, Month: time.December},
		{Year: 2024, Month: time.November},
	}

	if len(got) != len(want) {
		t.Fatalf("Trailing returned %d periods, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Trailing[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTrailingMonthEndAnchoring(t *testing.T) {
	// A reference on the 31st must not skip months with fewer days.
	ref := time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)

	got := Trailing(ref, 4)
	want := []core.Period{
		{Year: 2025, Month: time.March},
		{Year: 2025, Month: time.February},
		{Year: 2025, Month: time.January},
		{Year: 2024, Month: time.December},
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Trailing[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWalkIsRestartable(t *testing.T) {
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	seq := Walk(ref, 3)

	first := make([]core.Period, 0, 3)
	for p := range seq {
		first = append(first, p)
	}
	second := make([]core.Period, 0, 3)
	for p := range seq {
		second = append(second, p)
	}

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("Walk yielded %d then %d periods, want 3 and 3", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Second iteration differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestWalkEarlyBreak(t *testing.T) {
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var got []core.Period
	for p := range Walk(ref, 12) {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}

	if len(got) != 2 {
		t.Fatalf("Expected early break after 2 periods, got %d", len(got))
	}
	if got[1] != (core.Period{Year: 2024, Month: time.May}) {
		t.Errorf("Second period = %v, want 2024 May", got[1])
	}
}

func TestTrailingZero(t *testing.T) {
	if got := Trailing(time.Now(), 0); len(got) != 0 {
		t.Errorf("Trailing(now, 0) = %v, want empty", got)
	}
}
