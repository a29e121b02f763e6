package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ownitapp/ownit/internal/models"
	"github.com/ownitapp/ownit/internal/store"
)

type Context struct {
	Store *store.Store
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

func parseMonthDays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	var days []int
	for _, part := range parts {
		part = strings.TrimSpace(part)
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 31 {
			return nil, fmt.Errorf("invalid day of month: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// parseSchedule builds a schedule from the shared --schedule/--weekdays/--days
// flag set used by habit add and habit edit.
func parseSchedule(scheduleType, weekdays, monthDays string) (models.Schedule, error) {
	schedule := models.Schedule{Type: models.ScheduleType(scheduleType)}

	switch schedule.Type {
	case models.ScheduleDaily:
	case models.ScheduleWeekly, models.ScheduleCustom:
		if weekdays == "" {
			return models.Schedule{}, fmt.Errorf("weekdays must be specified for %s schedule", scheduleType)
		}
		wds, err := parseWeekdays(weekdays)
		if err != nil {
			return models.Schedule{}, err
		}
		schedule.DaysOfWeek = wds
	case models.ScheduleMonthly:
		if monthDays == "" {
			return models.Schedule{}, fmt.Errorf("days of month must be specified for monthly schedule")
		}
		days, err := parseMonthDays(monthDays)
		if err != nil {
			return models.Schedule{}, err
		}
		schedule.DaysOfMonth = days
	default:
		return models.Schedule{}, fmt.Errorf("invalid schedule type: %s", scheduleType)
	}

	return schedule, nil
}

// resolveHabit finds a habit by exact ID or by unique case-insensitive name.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	if habit, err := ctx.Store.GetHabit(ref); err == nil {
		return habit, nil
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, habit := range habits {
		if strings.EqualFold(habit.Name, ref) {
			matches = append(matches, habit)
		}
	}

	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit name %q is ambiguous, use the ID", ref)
	}
}

// parseDateFlag parses an optional --date flag, defaulting to today.
func parseDateFlag(date string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

func categoryName(ctx *Context, habit models.Habit) string {
	if habit.CategoryID == nil {
		return "-"
	}
	category, err := ctx.Store.GetCategory(*habit.CategoryID)
	if err != nil {
		return "-"
	}
	return category.Name
}
