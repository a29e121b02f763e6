package cli

import (
	"fmt"
	"strings"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Note  string `short:"m" help:"Note to attach to the completion."`
	Date  string `short:"d" help:"Date to complete (YYYY-MM-DD), defaults to today."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	date, err := parseDateFlag(c.Date)
	if err != nil {
		return err
	}

	completion, ok := ctx.Store.CompleteHabit(habit.ID, c.Note, date)
	if !ok {
		if habit.RequiresNote && strings.TrimSpace(c.Note) == "" {
			return fmt.Errorf("habit %q requires a note, use -m", habit.Name)
		}
		if ctx.Store.IsCompletedOnDate(habit.ID, date) {
			fmt.Printf("%s is already done for %s.\n", habit.Name, date.Format("2006-01-02"))
			return nil
		}
		return fmt.Errorf("could not record completion for %q", habit.Name)
	}

	streakCount, err := ctx.Store.CurrentStreak(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %s (%s). Streak: %d\n", habit.Name, completion.Date, streakCount)
	return nil
}

type UndoCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Date  string `short:"d" help:"Date to undo (YYYY-MM-DD), defaults to today."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	date, err := parseDateFlag(c.Date)
	if err != nil {
		return err
	}

	if !ctx.Store.RemoveCompletion(habit.ID, date) {
		fmt.Printf("%s was not done on %s.\n", habit.Name, date.Format("2006-01-02"))
		return nil
	}

	fmt.Printf("Undid completion for %s on %s.\n", habit.Name, date.Format("2006-01-02"))
	return nil
}
