package utils

import (
	"time"

	"github.com/ownitapp/ownit/internal/constants"
)

// FormatDateKey returns the canonical date key (YYYY-MM-DD, zero-padded) for
// the local calendar date of t. The time component is discarded.
func FormatDateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a canonical date key into a midnight local time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, key, time.Local)
}

// PreviousDay returns the calendar day before t. Date-based arithmetic is used
// so DST transitions cannot skip or repeat a day.
func PreviousDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}

// SortDateKeysDesc is a sort.Slice comparator for date keys, newest first.
// Lexicographic order matches chronological order for the canonical format.
func SortDateKeysDesc(a, b string) bool {
	return a > b
}
