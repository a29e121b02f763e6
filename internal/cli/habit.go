package cli

import (
	"fmt"

	"github.com/ownitapp/ownit/internal/models"
	"github.com/ownitapp/ownit/internal/store"
)

type HabitAddCmd struct {
	Name         string `arg:"" help:"Habit name."`
	Schedule     string `short:"s" help:"Schedule type (daily|weekly|monthly|custom)." default:"daily"`
	Weekdays     string `short:"w" help:"Comma-separated weekdays for weekly/custom schedules."`
	Days         string `short:"d" help:"Comma-separated days of month for monthly schedules."`
	Category     string `short:"c" help:"Category ID or name."`
	RemindAt     string `short:"r" help:"Reminder time (HH:MM)."`
	RemindOn     string `help:"Comma-separated weekdays overriding the reminder days."`
	RequiresNote bool   `short:"n" help:"Require a note when completing."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	schedule, err := parseSchedule(c.Schedule, c.Weekdays, c.Days)
	if err != nil {
		return err
	}

	input := store.HabitInput{
		Name:         c.Name,
		Schedule:     schedule,
		RequiresNote: c.RequiresNote,
	}

	if c.Category != "" {
		categoryID, err := resolveCategoryID(ctx, c.Category)
		if err != nil {
			return err
		}
		input.CategoryID = &categoryID
	}

	if c.RemindAt != "" {
		reminder := &models.Reminder{
			Enabled: true,
			Time:    c.RemindAt,
		}
		if c.RemindOn != "" {
			wds, err := parseWeekdays(c.RemindOn)
			if err != nil {
				return err
			}
			reminder.DaysOfWeek = wds
		}
		input.Reminder = reminder
	}

	habit, err := ctx.Store.AddHabit(input)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'ownit habit add'.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-24s  %s\n", "ID", "NAME", "SCHEDULE", "CATEGORY")
	for _, habit := range habits {
		fmt.Printf("%-36s  %-20s  %-24s  %s\n", habit.ID, habit.Name, habit.FormatSchedule(), categoryName(ctx, habit))
	}

	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	streakCount, err := ctx.Store.CurrentStreak(habit.ID)
	if err != nil {
		return err
	}

	completions, err := ctx.Store.CompletionsForHabit(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Habit: %s\n", habit.Name)
	fmt.Printf("ID: %s\n", habit.ID)
	fmt.Printf("Schedule: %s\n", habit.FormatSchedule())
	fmt.Printf("Category: %s\n", categoryName(ctx, habit))
	if habit.Reminder != nil && habit.Reminder.Enabled {
		fmt.Printf("Reminder: %s\n", habit.Reminder.Time)
	} else {
		fmt.Println("Reminder: off")
	}
	fmt.Printf("Requires note: %t\n", habit.RequiresNote)
	fmt.Printf("Current streak: %d\n", streakCount)
	fmt.Printf("Total completions: %d\n", len(completions))

	// Most recent history, newest first
	limit := 7
	if len(completions) < limit {
		limit = len(completions)
	}
	for _, completion := range completions[:limit] {
		if completion.Note != "" {
			fmt.Printf("  %s  %s\n", completion.Date, completion.Note)
		} else {
			fmt.Printf("  %s\n", completion.Date)
		}
	}

	return nil
}

type HabitEditCmd struct {
	Habit         string `arg:"" help:"Habit ID or name."`
	Name          string `help:"New habit name."`
	Schedule      string `short:"s" help:"New schedule type (daily|weekly|monthly|custom)."`
	Weekdays      string `short:"w" help:"Comma-separated weekdays for weekly/custom schedules."`
	Days          string `short:"d" help:"Comma-separated days of month for monthly schedules."`
	Category      string `short:"c" help:"Category ID or name."`
	ClearCategory bool   `help:"Remove the habit's category."`
	RemindAt      string `short:"r" help:"Reminder time (HH:MM)."`
	RemindOn      string `help:"Comma-separated weekdays overriding the reminder days."`
	ClearReminder bool   `help:"Disable the habit's reminder."`
	RequiresNote  *bool  `short:"n" help:"Require a note when completing (--requires-note=false to unset)."`
}

func (c *HabitEditCmd) Validate() error {
	if c.Category != "" && c.ClearCategory {
		return fmt.Errorf("--category and --clear-category are mutually exclusive")
	}
	if c.RemindAt != "" && c.ClearReminder {
		return fmt.Errorf("--remind-at and --clear-reminder are mutually exclusive")
	}
	return nil
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	update := store.HabitUpdate{
		ClearCategory: c.ClearCategory,
		ClearReminder: c.ClearReminder,
		RequiresNote:  c.RequiresNote,
	}

	if c.Name != "" {
		update.Name = &c.Name
	}

	if c.Schedule != "" {
		schedule, err := parseSchedule(c.Schedule, c.Weekdays, c.Days)
		if err != nil {
			return err
		}
		update.Schedule = &schedule
	}

	if c.Category != "" {
		categoryID, err := resolveCategoryID(ctx, c.Category)
		if err != nil {
			return err
		}
		update.CategoryID = &categoryID
	}

	if c.RemindAt != "" {
		reminder := &models.Reminder{
			Enabled: true,
			Time:    c.RemindAt,
		}
		if c.RemindOn != "" {
			wds, err := parseWeekdays(c.RemindOn)
			if err != nil {
				return err
			}
			reminder.DaysOfWeek = wds
		}
		update.Reminder = reminder
	}

	updated, err := ctx.Store.UpdateHabit(habit.ID, update)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Force bool   `short:"f" help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete habit %q and its completion history? [y/N] ", habit.Name)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
