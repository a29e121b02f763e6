package cli

import (
	"fmt"

	"github.com/ownitapp/ownit/internal/notifier"
	"github.com/ownitapp/ownit/internal/reminder"
)

type RemindSyncCmd struct{}

func (c *RemindSyncCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.SyncReminders(); err != nil {
		return err
	}

	fmt.Println("Reminder triggers synced.")
	return nil
}

type RemindStatusCmd struct{}

func (c *RemindStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	agent := notifier.New()
	granted, err := agent.RequestPermission()
	if err != nil {
		return err
	}
	if !granted {
		fmt.Println("Agent: not running (reminders will not fire)")
		return nil
	}

	fmt.Println("Agent: running")

	scheduled, err := agent.ListScheduled()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled triggers: %d\n", len(scheduled))
	for _, habit := range habits {
		triggers := reminder.DeriveTriggers(habit)
		if len(triggers) == 0 {
			continue
		}
		fmt.Printf("  %-20s %s on %d day(s)\n", habit.Name, habit.Reminder.Time, len(triggers))
	}

	return nil
}
