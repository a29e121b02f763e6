package utils

import (
	"testing"
	"time"
)

func TestFormatDateKey_ZeroPadded(t *testing.T) {
	d := time.Date(2026, time.March, 5, 23, 59, 0, 0, time.Local)
	if got := FormatDateKey(d); got != "2026-03-05" {
		t.Errorf("Expected 2026-03-05, got %s", got)
	}
}

func TestParseDateKey_RoundTrip(t *testing.T) {
	parsed, err := ParseDateKey("2026-03-05")
	if err != nil {
		t.Fatalf("ParseDateKey failed: %v", err)
	}
	if got := FormatDateKey(parsed); got != "2026-03-05" {
		t.Errorf("Expected round trip to yield 2026-03-05, got %s", got)
	}
}

func TestParseDateKey_RejectsMalformed(t *testing.T) {
	for _, key := range []string{"2026-3-5", "03/05/2026", "not-a-date"} {
		if _, err := ParseDateKey(key); err == nil {
			t.Errorf("Expected error parsing %q", key)
		}
	}
}

func TestPreviousDay_CrossesMonthAndYearBoundaries(t *testing.T) {
	jan1 := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.Local)
	if got := FormatDateKey(PreviousDay(jan1)); got != "2025-12-31" {
		t.Errorf("Expected 2025-12-31, got %s", got)
	}

	mar1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	if got := FormatDateKey(PreviousDay(mar1)); got != "2024-02-29" {
		t.Errorf("Expected leap day 2024-02-29, got %s", got)
	}
}

func TestSortDateKeysDesc_LexicographicIsChronological(t *testing.T) {
	if !SortDateKeysDesc("2026-01-02", "2026-01-01") {
		t.Errorf("Expected 2026-01-02 to sort before 2026-01-01")
	}
	if SortDateKeysDesc("2025-12-31", "2026-01-01") {
		t.Errorf("Expected 2025-12-31 to sort after 2026-01-01")
	}
}
