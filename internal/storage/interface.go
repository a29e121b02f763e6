package storage

import "github.com/ownitapp/ownit/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error

	// Completions
	AddCompletion(models.Completion) error
	GetCompletion(id string) (models.Completion, error)
	// GetCompletionForDay looks up the completion for an exact (habit, date-key)
	// pair. It returns an error when no completion exists for that day.
	GetCompletionForDay(habitID, day string) (models.Completion, error)
	// GetCompletionsForHabit returns the habit's completions ordered by date
	// descending (newest first).
	GetCompletionsForHabit(habitID string) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)
	DeleteCompletion(id string) error
	DeleteCompletionsForHabit(habitID string) error

	// Utils
	GetConfigPath() string
}
