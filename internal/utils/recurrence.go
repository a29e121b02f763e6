package utils

import (
	"time"

	"github.com/ownitapp/ownit/internal/models"
)

// IsHabitDue determines if a habit is due on the given date based on its
// schedule. Pure and deterministic given (schedule, date); irrelevant schedule
// fields are ignored.
func IsHabitDue(habit models.Habit, date time.Time) bool {
	switch habit.Schedule.Type {
	case models.ScheduleDaily:
		return true
	case models.ScheduleWeekly, models.ScheduleCustom:
		if len(habit.Schedule.DaysOfWeek) == 0 {
			return false
		}
		for _, wd := range habit.Schedule.DaysOfWeek {
			if date.Weekday() == wd {
				return true
			}
		}
		return false
	case models.ScheduleMonthly:
		// Days configured beyond the current month's length (e.g. 31 in a
		// 30-day month) simply never match; this is accepted behavior.
		if len(habit.Schedule.DaysOfMonth) == 0 {
			return false
		}
		for _, d := range habit.Schedule.DaysOfMonth {
			if date.Day() == d {
				return true
			}
		}
		return false
	default:
		return false
	}
}
