package models

import "time"

// Category groups habits. Habits reference it weakly: deleting a category
// clears the reference instead of cascading to the habit.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
