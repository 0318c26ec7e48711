package core

import (
	"testing"
	"time"
)

func TestPeriodKey(t *testing.T) {
	p := Period{Year: 2024, Month: time.March}
	if got := p.Key(); got != "2024-03" {
		t.Errorf("Key() = %q, want %q", got, "2024-03")
	}

	p = Period{Year: 2025, Month: time.December}
	if got := p.Key(); got != "2025-12" {
		t.Errorf("Key() = %q, want %q", got, "2025-12")
	}
}

func TestParsePeriodKey(t *testing.T) {
	p, err := ParsePeriodKey("2024-03")
	if err != nil {
		t.Fatalf("ParsePeriodKey failed: %v", err)
	}
	if p.Year != 2024 || p.Month != time.March {
		t.Errorf("ParsePeriodKey = %+v, want 2024 March", p)
	}

	if _, err := ParsePeriodKey("garbage"); err == nil {
		t.Error("Expected error for malformed key")
	}
	if _, err := ParsePeriodKey("2024-13"); err == nil {
		t.Error("Expected error for out-of-range month")
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Year: 2024, Month: time.March}

	if !p.Contains(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("Period should contain a date in the same month")
	}
	if p.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Period should not contain a date in the next month")
	}
	if p.Contains(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("Period should not contain the same month of another year")
	}
}

func TestPeriodString(t *testing.T) {
	p := Period{Year: 2025, Month: time.January}
	if got := p.String(); got != "Leden 2025" {
		t.Errorf("String() = %q, want %q", got, "Leden 2025")
	}

	p = Period{Year: 2024, Month: time.October}
	if got := p.String(); got != "Říjen 2024" {
		t.Errorf("String() = %q, want %q", got, "Říjen 2024")
	}
}
