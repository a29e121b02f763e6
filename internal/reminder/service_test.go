package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/ownitapp/ownit/internal/models"
)

type fakePort struct {
	scheduled  []string
	permission bool

	listErr     error
	scheduleErr error

	cancelled []string
	added     []Trigger
}

func (f *fakePort) Schedule(trigger Trigger) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.added = append(f.added, trigger)
	return nil
}

func (f *fakePort) Cancel(id string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakePort) ListScheduled() ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.scheduled, nil
}

func (f *fakePort) RequestPermission() (bool, error) {
	return f.permission, nil
}

func reminderHabit() models.Habit {
	return models.Habit{
		ID:       "h1",
		Name:     "Meditate",
		Schedule: models.Schedule{Type: models.ScheduleDaily},
		Reminder: &models.Reminder{Enabled: true, Time: "09:00"},
	}
}

func TestServiceApply_SchedulesTriggers(t *testing.T) {
	port := &fakePort{permission: true, scheduled: []string{"h1-2", "h2-0"}}
	service := NewService(port)

	service.Apply(reminderHabit())

	if len(port.cancelled) != 1 || port.cancelled[0] != "h1-2" {
		t.Errorf("Expected stale trigger h1-2 cancelled, got %v", port.cancelled)
	}
	if len(port.added) != 7 {
		t.Errorf("Expected 7 triggers scheduled, got %d", len(port.added))
	}
}

func TestServiceApply_PermissionDeniedSkipsScheduling(t *testing.T) {
	port := &fakePort{permission: false, scheduled: []string{"h1-2"}}
	service := NewService(port)

	service.Apply(reminderHabit())

	// Stale triggers are still cleaned up, nothing new gets scheduled
	if len(port.cancelled) != 1 {
		t.Errorf("Expected stale trigger cancelled despite denial, got %v", port.cancelled)
	}
	if len(port.added) != 0 {
		t.Errorf("Expected no triggers scheduled without permission, got %d", len(port.added))
	}
}

func TestServiceApply_DisabledReminderSkipsPermissionCheck(t *testing.T) {
	habit := reminderHabit()
	habit.Reminder = nil

	port := &fakePort{permission: false, scheduled: []string{"h1-0"}}
	service := NewService(port)

	service.Apply(habit)

	if len(port.cancelled) != 1 {
		t.Errorf("Expected existing trigger cancelled, got %v", port.cancelled)
	}
	if len(port.added) != 0 {
		t.Errorf("Expected nothing scheduled, got %d", len(port.added))
	}
}

func TestServiceApply_ListFailureIsSoft(t *testing.T) {
	port := &fakePort{permission: true, listErr: errors.New("agent unreachable")}
	service := NewService(port)

	// Must not panic or schedule anything
	service.Apply(reminderHabit())

	if len(port.added) != 0 {
		t.Errorf("Expected nothing scheduled when listing fails, got %d", len(port.added))
	}
}

func TestServiceApply_ScheduleFailureContinues(t *testing.T) {
	port := &fakePort{permission: true, scheduleErr: errors.New("boom")}
	service := NewService(port)

	service.Apply(reminderHabit())

	if len(port.added) != 0 {
		t.Errorf("Expected no triggers recorded on schedule failure, got %d", len(port.added))
	}
}

func TestServiceRemove_CancelsHabitTriggers(t *testing.T) {
	port := &fakePort{scheduled: []string{"h1-0", "h1-5", "h2-1"}}
	service := NewService(port)

	service.Remove("h1")

	if len(port.cancelled) != 2 {
		t.Errorf("Expected 2 triggers cancelled, got %v", port.cancelled)
	}
	for _, id := range port.cancelled {
		if id == "h2-1" {
			t.Errorf("Cancelled another habit's trigger: %s", id)
		}
	}
}

func TestServiceSyncAll(t *testing.T) {
	other := models.Habit{
		ID:   "h2",
		Name: "Gym",
		Schedule: models.Schedule{
			Type:       models.ScheduleWeekly,
			DaysOfWeek: []time.Weekday{time.Monday},
		},
		Reminder: &models.Reminder{Enabled: true, Time: "07:00"},
	}

	port := &fakePort{permission: true}
	service := NewService(port)

	service.SyncAll([]models.Habit{reminderHabit(), other})

	if len(port.added) != 8 {
		t.Errorf("Expected 7+1 triggers scheduled, got %d", len(port.added))
	}
}

func TestNilServiceIsSafe(t *testing.T) {
	var service *Service
	service.Apply(reminderHabit())
	service.Remove("h1")
}
