package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/ownitapp/ownit/internal/constants"
	"github.com/ownitapp/ownit/internal/models"
)

// Trigger is a single recurring weekly notification slot. A habit reminder
// expands to one trigger per weekday it fires on.
type Trigger struct {
	HabitID string       `json:"habit_id"`
	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`
	Minute  int          `json:"minute"`
	Title   string       `json:"title"`
	Body    string       `json:"body"`
}

// ID returns the trigger's stable identifier. Deriving it from the habit ID
// and weekday makes rescheduling idempotent: re-planning the same habit
// produces the same IDs, and all of a habit's triggers share the habit-ID
// prefix so they can be cancelled as a group.
func (t Trigger) ID() string {
	return fmt.Sprintf("%s-%d", t.HabitID, int(t.Weekday))
}

// DeriveTriggers expands a habit's reminder configuration into its trigger
// set. It returns nil when the habit has no enabled reminder or the reminder
// time is unset or malformed.
//
// The weekday set is the explicit reminder override when present; otherwise
// weekly and custom schedules remind on their scheduled days, and daily and
// monthly schedules remind every day. Monthly gets all seven because a weekly
// trigger model cannot express "the 15th"; a daily nudge at the configured
// time is the closest approximation.
func DeriveTriggers(habit models.Habit) []Trigger {
	if habit.Reminder == nil || !habit.Reminder.Enabled || habit.Reminder.Time == "" {
		return nil
	}

	parsed, err := time.Parse(constants.TimeFormat, habit.Reminder.Time)
	if err != nil {
		return nil
	}
	hour, minute := parsed.Hour(), parsed.Minute()

	var weekdays []time.Weekday
	switch {
	case len(habit.Reminder.DaysOfWeek) > 0:
		weekdays = habit.Reminder.DaysOfWeek
	case habit.Schedule.Type == models.ScheduleWeekly || habit.Schedule.Type == models.ScheduleCustom:
		weekdays = habit.Schedule.DaysOfWeek
	default:
		weekdays = allWeekdays()
	}

	triggers := make([]Trigger, 0, len(weekdays))
	for _, wd := range weekdays {
		triggers = append(triggers, Trigger{
			HabitID: habit.ID,
			Weekday: wd,
			Hour:    hour,
			Minute:  minute,
			Title:   "Habit Reminder",
			Body:    fmt.Sprintf("Time to %s!", strings.ToLower(habit.Name)),
		})
	}

	return triggers
}

func allWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// Plan is the cancel/schedule delta that reconciles the currently scheduled
// trigger IDs with a habit's desired trigger set.
type Plan struct {
	ToCancel   []string
	ToSchedule []Trigger
}

// PlanUpdate computes the reconciliation plan for one habit: every already
// scheduled trigger belonging to the habit is cancelled, then the habit's
// current trigger set is scheduled from scratch. Cancel-then-reschedule is
// simpler than diffing and the trigger counts are tiny.
func PlanUpdate(scheduled []string, habit models.Habit) Plan {
	return Plan{
		ToCancel:   idsForHabit(scheduled, habit.ID),
		ToSchedule: DeriveTriggers(habit),
	}
}

// PlanRemoval computes the plan that cancels all of a habit's triggers.
func PlanRemoval(scheduled []string, habitID string) Plan {
	return Plan{
		ToCancel: idsForHabit(scheduled, habitID),
	}
}

func idsForHabit(scheduled []string, habitID string) []string {
	prefix := habitID + "-"
	var ids []string
	for _, id := range scheduled {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return ids
}
