package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ownitapp/ownit/internal/models"
)

// runProviderTest runs the same scenario against both provider
// implementations so JSON and SQLite stores stay behaviorally identical.
func runProviderTest(t *testing.T, test func(t *testing.T, provider Provider)) {
	t.Helper()

	t.Run("json", func(t *testing.T) {
		provider := NewJSONStore(filepath.Join(t.TempDir(), "ownit.json"))
		if err := provider.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		test(t, provider)
	})

	t.Run("sqlite", func(t *testing.T) {
		provider := NewSQLiteStore(filepath.Join(t.TempDir(), "ownit.db"))
		if err := provider.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		defer provider.Close()
		test(t, provider)
	})
}

func sampleHabit(id string, createdAt time.Time) models.Habit {
	return models.Habit{
		ID:   id,
		Name: "Habit " + id,
		Schedule: models.Schedule{
			Type:       models.ScheduleWeekly,
			DaysOfWeek: []time.Weekday{time.Monday, time.Friday},
		},
		Reminder:  &models.Reminder{Enabled: true, Time: "09:00"},
		CreatedAt: createdAt,
	}
}

func TestProvider_HabitRoundTrip(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		categoryID := "cat-1"
		habit := sampleHabit("h1", time.Now())
		habit.CategoryID = &categoryID
		habit.RequiresNote = true

		if err := provider.AddHabit(habit); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		loaded, err := provider.GetHabit("h1")
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}

		if loaded.Name != habit.Name {
			t.Errorf("Expected name %q, got %q", habit.Name, loaded.Name)
		}
		if loaded.CategoryID == nil || *loaded.CategoryID != categoryID {
			t.Errorf("Expected category %s, got %v", categoryID, loaded.CategoryID)
		}
		if loaded.Schedule.Type != models.ScheduleWeekly || len(loaded.Schedule.DaysOfWeek) != 2 {
			t.Errorf("Expected weekly schedule with 2 days, got %+v", loaded.Schedule)
		}
		if loaded.Reminder == nil || !loaded.Reminder.Enabled || loaded.Reminder.Time != "09:00" {
			t.Errorf("Expected reminder at 09:00, got %+v", loaded.Reminder)
		}
		if !loaded.RequiresNote {
			t.Errorf("Expected requires_note to survive round trip")
		}
	})
}

func TestProvider_UpdateMissingHabitFails(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		if err := provider.UpdateHabit(sampleHabit("ghost", time.Now())); err == nil {
			t.Errorf("Expected error updating missing habit")
		}
	})
}

func TestProvider_DeleteHabitIsHard(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		if err := provider.AddHabit(sampleHabit("h1", time.Now())); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		if err := provider.DeleteHabit("h1"); err != nil {
			t.Fatalf("DeleteHabit failed: %v", err)
		}

		if _, err := provider.GetHabit("h1"); err == nil {
			t.Errorf("Expected habit gone after delete")
		}
		if err := provider.DeleteHabit("h1"); err == nil {
			t.Errorf("Expected error deleting missing habit")
		}
	})
}

func TestProvider_HabitsListedNewestFirst(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		base := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
		for i, id := range []string{"old", "mid", "new"} {
			if err := provider.AddHabit(sampleHabit(id, base.AddDate(0, 0, i))); err != nil {
				t.Fatalf("AddHabit failed: %v", err)
			}
		}

		habits, err := provider.GetAllHabits()
		if err != nil {
			t.Fatalf("GetAllHabits failed: %v", err)
		}
		if len(habits) != 3 {
			t.Fatalf("Expected 3 habits, got %d", len(habits))
		}
		if habits[0].ID != "new" || habits[2].ID != "old" {
			t.Errorf("Expected newest-first order, got %s..%s", habits[0].ID, habits[2].ID)
		}
	})
}

func TestProvider_CategoryLifecycle(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		category := models.Category{ID: "c1", Name: "Health", CreatedAt: time.Now()}
		if err := provider.AddCategory(category); err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}

		category.Name = "Wellness"
		if err := provider.UpdateCategory(category); err != nil {
			t.Fatalf("UpdateCategory failed: %v", err)
		}

		loaded, err := provider.GetCategory("c1")
		if err != nil {
			t.Fatalf("GetCategory failed: %v", err)
		}
		if loaded.Name != "Wellness" {
			t.Errorf("Expected renamed category, got %s", loaded.Name)
		}

		if err := provider.DeleteCategory("c1"); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}
		if _, err := provider.GetCategory("c1"); err == nil {
			t.Errorf("Expected category gone after delete")
		}
	})
}

func TestProvider_CompletionsByHabitAndDay(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		completions := []models.Completion{
			{ID: "c1", HabitID: "h1", Date: "2026-01-01", CreatedAt: time.Now()},
			{ID: "c2", HabitID: "h1", Date: "2026-01-03", Note: "felt great", CreatedAt: time.Now()},
			{ID: "c3", HabitID: "h2", Date: "2026-01-02", CreatedAt: time.Now()},
		}
		for _, c := range completions {
			if err := provider.AddCompletion(c); err != nil {
				t.Fatalf("AddCompletion failed: %v", err)
			}
		}

		forDay, err := provider.GetCompletionForDay("h1", "2026-01-03")
		if err != nil {
			t.Fatalf("GetCompletionForDay failed: %v", err)
		}
		if forDay.ID != "c2" || forDay.Note != "felt great" {
			t.Errorf("Expected c2 with note, got %+v", forDay)
		}

		if _, err := provider.GetCompletionForDay("h1", "2026-01-02"); err == nil {
			t.Errorf("Expected no completion for h1 on 2026-01-02")
		}

		forHabit, err := provider.GetCompletionsForHabit("h1")
		if err != nil {
			t.Fatalf("GetCompletionsForHabit failed: %v", err)
		}
		if len(forHabit) != 2 {
			t.Fatalf("Expected 2 completions for h1, got %d", len(forHabit))
		}
		if forHabit[0].Date != "2026-01-03" {
			t.Errorf("Expected newest completion first, got %s", forHabit[0].Date)
		}
	})
}

func TestProvider_DeleteCompletionsForHabit(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		for _, c := range []models.Completion{
			{ID: "c1", HabitID: "h1", Date: "2026-01-01", CreatedAt: time.Now()},
			{ID: "c2", HabitID: "h1", Date: "2026-01-02", CreatedAt: time.Now()},
			{ID: "c3", HabitID: "h2", Date: "2026-01-02", CreatedAt: time.Now()},
		} {
			if err := provider.AddCompletion(c); err != nil {
				t.Fatalf("AddCompletion failed: %v", err)
			}
		}

		if err := provider.DeleteCompletionsForHabit("h1"); err != nil {
			t.Fatalf("DeleteCompletionsForHabit failed: %v", err)
		}

		all, err := provider.GetAllCompletions()
		if err != nil {
			t.Fatalf("GetAllCompletions failed: %v", err)
		}
		if len(all) != 1 || all[0].HabitID != "h2" {
			t.Errorf("Expected only h2's completion to remain, got %+v", all)
		}
	})
}

func TestProvider_SettingsDefaultAndSave(t *testing.T) {
	runProviderTest(t, func(t *testing.T, provider Provider) {
		settings, err := provider.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if settings.Theme != "dark" {
			t.Errorf("Expected default theme dark, got %s", settings.Theme)
		}

		settings.Theme = "light"
		if err := provider.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}

		loaded, err := provider.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if loaded.Theme != "light" {
			t.Errorf("Expected saved theme light, got %s", loaded.Theme)
		}
	})
}
