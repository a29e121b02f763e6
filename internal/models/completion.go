package models

import "time"

// Completion records that a habit was performed on a specific calendar day.
// At most one completion exists per (habit, day) pair.
type Completion struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
