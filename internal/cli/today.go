package cli

import (
	"fmt"
)

type TodayCmd struct {
	Date string `short:"d" help:"Show habits due on a specific date (YYYY-MM-DD)."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := parseDateFlag(c.Date)
	if err != nil {
		return err
	}

	due, err := ctx.Store.DueOn(date)
	if err != nil {
		return err
	}

	if len(due) == 0 {
		fmt.Printf("Nothing due on %s.\n", date.Format("2006-01-02"))
		return nil
	}

	fmt.Printf("Due on %s:\n", date.Format("2006-01-02"))
	for _, habit := range due {
		mark := " "
		if ctx.Store.IsCompletedOnDate(habit.ID, date) {
			mark = "x"
		}
		streakCount, err := ctx.Store.CurrentStreak(habit.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  [%s] %-20s (streak: %d)\n", mark, habit.Name, streakCount)
	}

	return nil
}

type StreakCmd struct {
	Habit string `arg:"" optional:"" help:"Habit ID or name. Omit to show all."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Habit != "" {
		habit, err := resolveHabit(ctx, c.Habit)
		if err != nil {
			return err
		}
		streakCount, err := ctx.Store.CurrentStreak(habit.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d\n", habit.Name, streakCount)
		return nil
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	for _, habit := range habits {
		streakCount, err := ctx.Store.CurrentStreak(habit.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%-20s %d\n", habit.Name, streakCount)
	}

	return nil
}
