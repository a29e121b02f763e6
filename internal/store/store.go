package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ownitapp/ownit/internal/logger"
	"github.com/ownitapp/ownit/internal/models"
	"github.com/ownitapp/ownit/internal/reminder"
	"github.com/ownitapp/ownit/internal/storage"
	"github.com/ownitapp/ownit/internal/streak"
	"github.com/ownitapp/ownit/internal/utils"
)

// Store is the domain layer over a storage.Provider. It owns ID generation,
// validation, cross-entity cascades, and keeping reminder triggers in sync
// with habit changes. Reminder syncing is best-effort and never fails the
// operation that triggered it.
type Store struct {
	provider  storage.Provider
	reminders *reminder.Service
	now       func() time.Time
}

func New(provider storage.Provider, reminders *reminder.Service) *Store {
	return &Store{
		provider:  provider,
		reminders: reminders,
		now:       time.Now,
	}
}

// Init initializes the underlying storage.
func (s *Store) Init() error {
	return s.provider.Init()
}

// Load opens the underlying storage; it must be called before any other
// operation on an existing store.
func (s *Store) Load() error {
	return s.provider.Load()
}

func (s *Store) Close() error {
	return s.provider.Close()
}

// HabitInput carries the caller-supplied fields for a new habit.
type HabitInput struct {
	Name         string
	CategoryID   *string
	Schedule     models.Schedule
	Reminder     *models.Reminder
	RequiresNote bool
}

// HabitUpdate describes a partial habit update. Nil fields are left
// untouched; ClearCategory and ClearReminder unset their optional fields.
type HabitUpdate struct {
	Name          *string
	CategoryID    *string
	ClearCategory bool
	Schedule      *models.Schedule
	Reminder      *models.Reminder
	ClearReminder bool
	RequiresNote  *bool
}

func (s *Store) AddHabit(input HabitInput) (models.Habit, error) {
	habit := models.Habit{
		ID:           uuid.NewString(),
		Name:         input.Name,
		CategoryID:   input.CategoryID,
		Schedule:     input.Schedule,
		Reminder:     input.Reminder,
		RequiresNote: input.RequiresNote,
		CreatedAt:    s.now(),
	}

	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}

	if habit.CategoryID != nil {
		if _, err := s.provider.GetCategory(*habit.CategoryID); err != nil {
			return models.Habit{}, fmt.Errorf("unknown category: %s", *habit.CategoryID)
		}
	}

	if err := s.provider.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}

	s.reminders.Apply(habit)
	return habit, nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	return s.provider.GetHabit(id)
}

func (s *Store) ListHabits() ([]models.Habit, error) {
	return s.provider.GetAllHabits()
}

func (s *Store) UpdateHabit(id string, update HabitUpdate) (models.Habit, error) {
	habit, err := s.provider.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	if update.Name != nil {
		habit.Name = *update.Name
	}
	if update.ClearCategory {
		habit.CategoryID = nil
	} else if update.CategoryID != nil {
		if _, err := s.provider.GetCategory(*update.CategoryID); err != nil {
			return models.Habit{}, fmt.Errorf("unknown category: %s", *update.CategoryID)
		}
		habit.CategoryID = update.CategoryID
	}
	if update.Schedule != nil {
		habit.Schedule = *update.Schedule
	}
	if update.ClearReminder {
		habit.Reminder = nil
	} else if update.Reminder != nil {
		habit.Reminder = update.Reminder
	}
	if update.RequiresNote != nil {
		habit.RequiresNote = *update.RequiresNote
	}

	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}

	if err := s.provider.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}

	s.reminders.Apply(habit)
	return habit, nil
}

// DeleteHabit removes the habit along with its completion history and any
// scheduled reminder triggers.
func (s *Store) DeleteHabit(id string) error {
	if err := s.provider.DeleteHabit(id); err != nil {
		return err
	}

	if err := s.provider.DeleteCompletionsForHabit(id); err != nil {
		logger.Warn("could not delete completions for habit", "habit", id, "error", err)
	}

	s.reminders.Remove(id)
	return nil
}

func (s *Store) AddCategory(name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, fmt.Errorf("category name cannot be empty")
	}

	category := models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	}

	if err := s.provider.AddCategory(category); err != nil {
		return models.Category{}, err
	}

	return category, nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	return s.provider.GetCategory(id)
}

func (s *Store) ListCategories() ([]models.Category, error) {
	return s.provider.GetAllCategories()
}

func (s *Store) RenameCategory(id, name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, fmt.Errorf("category name cannot be empty")
	}

	category, err := s.provider.GetCategory(id)
	if err != nil {
		return models.Category{}, err
	}

	category.Name = name
	if err := s.provider.UpdateCategory(category); err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// DeleteCategory removes the category and detaches it from any habits that
// reference it. The habits themselves survive uncategorized.
func (s *Store) DeleteCategory(id string) error {
	if err := s.provider.DeleteCategory(id); err != nil {
		return err
	}

	habits, err := s.provider.GetAllHabits()
	if err != nil {
		logger.Warn("could not detach habits from deleted category", "category", id, "error", err)
		return nil
	}

	for _, habit := range habits {
		if habit.CategoryID != nil && *habit.CategoryID == id {
			habit.CategoryID = nil
			if err := s.provider.UpdateHabit(habit); err != nil {
				logger.Warn("could not detach habit from deleted category", "habit", habit.ID, "error", err)
			}
		}
	}

	return nil
}

// CompleteHabit records a completion for the habit on the given date. It
// reports false without recording anything when the habit does not exist,
// when the day is already completed, or when the habit requires a note and
// the note is blank after trimming. At most one completion ever exists per
// habit per day.
func (s *Store) CompleteHabit(habitID, note string, date time.Time) (models.Completion, bool) {
	habit, err := s.provider.GetHabit(habitID)
	if err != nil {
		return models.Completion{}, false
	}

	if habit.RequiresNote && strings.TrimSpace(note) == "" {
		return models.Completion{}, false
	}

	day := utils.FormatDateKey(date)
	if _, err := s.provider.GetCompletionForDay(habitID, day); err == nil {
		return models.Completion{}, false
	}

	completion := models.Completion{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		Date:      day,
		Note:      note,
		CreatedAt: s.now(),
	}

	if err := s.provider.AddCompletion(completion); err != nil {
		logger.Error("could not record completion", "habit", habitID, "day", day, "error", err)
		return models.Completion{}, false
	}

	return completion, true
}

// RemoveCompletion deletes the habit's completion for the given date,
// reporting whether one existed.
func (s *Store) RemoveCompletion(habitID string, date time.Time) bool {
	day := utils.FormatDateKey(date)
	completion, err := s.provider.GetCompletionForDay(habitID, day)
	if err != nil {
		return false
	}

	if err := s.provider.DeleteCompletion(completion.ID); err != nil {
		logger.Error("could not remove completion", "habit", habitID, "day", day, "error", err)
		return false
	}

	return true
}

func (s *Store) IsCompletedOnDate(habitID string, date time.Time) bool {
	_, err := s.provider.GetCompletionForDay(habitID, utils.FormatDateKey(date))
	return err == nil
}

func (s *Store) CompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.provider.GetCompletionsForHabit(habitID)
}

// CurrentStreak computes the habit's streak as of today.
func (s *Store) CurrentStreak(habitID string) (int, error) {
	habit, err := s.provider.GetHabit(habitID)
	if err != nil {
		return 0, err
	}

	completions, err := s.provider.GetCompletionsForHabit(habitID)
	if err != nil {
		return 0, err
	}

	return streak.Current(habit, completions, s.now(), 0), nil
}

// DueOn returns the habits due on the given date, in listing order.
func (s *Store) DueOn(date time.Time) ([]models.Habit, error) {
	habits, err := s.provider.GetAllHabits()
	if err != nil {
		return nil, err
	}

	var due []models.Habit
	for _, habit := range habits {
		if utils.IsHabitDue(habit, date) {
			due = append(due, habit)
		}
	}

	return due, nil
}

func (s *Store) DueToday() ([]models.Habit, error) {
	return s.DueOn(s.now())
}

// SyncReminders re-applies reminder triggers for every habit.
func (s *Store) SyncReminders() error {
	habits, err := s.provider.GetAllHabits()
	if err != nil {
		return err
	}
	s.reminders.SyncAll(habits)
	return nil
}

func (s *Store) Theme() (string, error) {
	settings, err := s.provider.GetSettings()
	if err != nil {
		return "", err
	}
	return settings.Theme, nil
}

func (s *Store) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("invalid theme: %s (expected dark or light)", theme)
	}

	settings, err := s.provider.GetSettings()
	if err != nil {
		return err
	}

	settings.Theme = theme
	return s.provider.SaveSettings(settings)
}

func (s *Store) ToggleTheme() (string, error) {
	current, err := s.Theme()
	if err != nil {
		return "", err
	}

	next := "dark"
	if current == "dark" {
		next = "light"
	}

	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *Store) ConfigPath() string {
	return s.provider.GetConfigPath()
}
