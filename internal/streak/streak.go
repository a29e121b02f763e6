package streak

import (
	"time"

	"github.com/ownitapp/ownit/internal/constants"
	"github.com/ownitapp/ownit/internal/models"
	"github.com/ownitapp/ownit/internal/utils"
)

// Current computes the habit's consecutive-completion streak by walking
// backward one calendar day at a time from reference:
//   - days the habit is not due are skipped without affecting the count
//   - a due and completed day extends the streak
//   - a due and uncompleted day ends the walk immediately
//
// The reference date itself is breakable: a due habit not yet completed on the
// reference date yields 0. Callers wanting "not done yet today" excluded must
// pass yesterday as the reference.
//
// maxLookback bounds the walk for habits with years of history; a
// non-positive value falls back to the default window. Exceeding the window
// returns whatever streak accumulated within it.
func Current(habit models.Habit, completions []models.Completion, reference time.Time, maxLookback int) int {
	if maxLookback <= 0 {
		maxLookback = constants.DefaultMaxLookbackDays
	}

	completed := make(map[string]bool, len(completions))
	for _, c := range completions {
		if c.HabitID == habit.ID {
			completed[c.Date] = true
		}
	}

	streak := 0
	cursor := reference
	for i := 0; i < maxLookback; i++ {
		if !utils.IsHabitDue(habit, cursor) {
			cursor = utils.PreviousDay(cursor)
			continue
		}
		if !completed[utils.FormatDateKey(cursor)] {
			break
		}
		streak++
		cursor = utils.PreviousDay(cursor)
	}

	return streak
}
