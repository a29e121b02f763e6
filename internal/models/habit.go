package models

import (
	"fmt"
	"strings"
	"time"
)

type ScheduleType string

const (
	ScheduleDaily   ScheduleType = "daily"
	ScheduleWeekly  ScheduleType = "weekly"
	ScheduleMonthly ScheduleType = "monthly"
	// ScheduleCustom evaluates identically to ScheduleWeekly; it exists as a
	// separate label so callers can distinguish preset from hand-picked days.
	ScheduleCustom ScheduleType = "custom"
)

type Schedule struct {
	Type        ScheduleType   `json:"type"`
	DaysOfWeek  []time.Weekday `json:"days_of_week,omitempty"`  // weekly/custom
	DaysOfMonth []int          `json:"days_of_month,omitempty"` // monthly (1-31)
}

// Reminder configures local notification triggers for a habit. It owns no
// persisted trigger state; triggers are recomputed from the habit on every
// relevant change.
type Reminder struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time,omitempty"` // HH:MM format
	// DaysOfWeek overrides the schedule-derived weekday set when non-empty.
	DaysOfWeek []time.Weekday `json:"days_of_week,omitempty"`
}

// Habit represents a recurring practice to track
type Habit struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   *string   `json:"category_id,omitempty"`
	Schedule     Schedule  `json:"schedule"`
	Reminder     *Reminder `json:"reminder,omitempty"`
	RequiresNote bool      `json:"requires_note"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	switch h.Schedule.Type {
	case ScheduleDaily:
	case ScheduleWeekly, ScheduleCustom:
		if len(h.Schedule.DaysOfWeek) == 0 {
			return fmt.Errorf("weekdays must be specified for %s schedule", h.Schedule.Type)
		}
		for _, wd := range h.Schedule.DaysOfWeek {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday: %d", wd)
			}
		}
	case ScheduleMonthly:
		if len(h.Schedule.DaysOfMonth) == 0 {
			return fmt.Errorf("days of month must be specified for monthly schedule")
		}
		for _, d := range h.Schedule.DaysOfMonth {
			if d < 1 || d > 31 {
				return fmt.Errorf("invalid day of month: %d", d)
			}
		}
	default:
		return fmt.Errorf("invalid schedule type: %s", h.Schedule.Type)
	}

	if h.Reminder != nil && h.Reminder.Enabled {
		if h.Reminder.Time == "" {
			return fmt.Errorf("reminder time cannot be empty when reminder is enabled")
		}
		if _, err := time.Parse("15:04", h.Reminder.Time); err != nil {
			return fmt.Errorf("invalid reminder time format (expected HH:MM): %w", err)
		}
		for _, wd := range h.Reminder.DaysOfWeek {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid reminder weekday: %d", wd)
			}
		}
	}

	return nil
}

// FormatSchedule returns a human-readable string describing the habit's schedule
func (h *Habit) FormatSchedule() string {
	switch h.Schedule.Type {
	case ScheduleDaily:
		return "Daily"
	case ScheduleWeekly, ScheduleCustom:
		days := make([]string, len(h.Schedule.DaysOfWeek))
		for i, wd := range h.Schedule.DaysOfWeek {
			days[i] = wd.String()[:3]
		}
		return fmt.Sprintf("Weekly: %s", strings.Join(days, ", "))
	case ScheduleMonthly:
		days := make([]string, len(h.Schedule.DaysOfMonth))
		for i, d := range h.Schedule.DaysOfMonth {
			days[i] = fmt.Sprintf("%d", d)
		}
		return fmt.Sprintf("Monthly on day %s", strings.Join(days, ", "))
	default:
		return "Unknown"
	}
}
