package reminder

import (
	"github.com/ownitapp/ownit/internal/logger"
	"github.com/ownitapp/ownit/internal/models"
)

// Port is the boundary to whatever actually delivers notifications. The tray
// agent implements it over HTTP; tests substitute an in-memory fake.
type Port interface {
	Schedule(trigger Trigger) error
	Cancel(id string) error
	ListScheduled() ([]string, error)
	RequestPermission() (bool, error)
}

// Service reconciles habit reminder configuration with the notification port.
// Reminder failures never fail the habit operation that caused them: the habit
// change is already persisted, so errors here are logged and swallowed.
type Service struct {
	port Port
}

func NewService(port Port) *Service {
	return &Service{port: port}
}

// Apply brings the port's scheduled triggers for the habit in line with its
// current reminder configuration. Existing triggers are cancelled first, so a
// disabled reminder ends up with none scheduled.
func (s *Service) Apply(habit models.Habit) {
	if s == nil || s.port == nil {
		return
	}

	scheduled, err := s.port.ListScheduled()
	if err != nil {
		logger.Warn("could not list scheduled reminders", "habit", habit.ID, "error", err)
		return
	}

	plan := PlanUpdate(scheduled, habit)
	for _, id := range plan.ToCancel {
		if err := s.port.Cancel(id); err != nil {
			logger.Warn("could not cancel reminder", "trigger", id, "error", err)
		}
	}

	if len(plan.ToSchedule) == 0 {
		return
	}

	granted, err := s.port.RequestPermission()
	if err != nil {
		logger.Warn("reminder permission check failed", "habit", habit.ID, "error", err)
		return
	}
	if !granted {
		logger.Info("reminder permission denied, skipping triggers", "habit", habit.ID)
		return
	}

	for _, trigger := range plan.ToSchedule {
		if err := s.port.Schedule(trigger); err != nil {
			logger.Warn("could not schedule reminder", "trigger", trigger.ID(), "error", err)
		}
	}
}

// Remove cancels all scheduled triggers belonging to the habit.
func (s *Service) Remove(habitID string) {
	if s == nil || s.port == nil {
		return
	}

	scheduled, err := s.port.ListScheduled()
	if err != nil {
		logger.Warn("could not list scheduled reminders", "habit", habitID, "error", err)
		return
	}

	for _, id := range PlanRemoval(scheduled, habitID).ToCancel {
		if err := s.port.Cancel(id); err != nil {
			logger.Warn("could not cancel reminder", "trigger", id, "error", err)
		}
	}
}

// SyncAll re-applies every habit's reminder configuration. Used after the tray
// agent restarts and its scheduled state may be stale.
func (s *Service) SyncAll(habits []models.Habit) {
	for _, habit := range habits {
		s.Apply(habit)
	}
}
