package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ownitapp/ownit/internal/models"
	"github.com/ownitapp/ownit/internal/utils"
)

type Settings struct {
	Theme string `json:"theme"` // dark|light
}

// Store is the persisted snapshot document. Every mutation rewrites the whole
// document, so the file is always a single consistent state.
type Store struct {
	Version     int                          `json:"version"`
	Settings    Settings                     `json:"settings"`
	Habits      map[string]models.Habit      `json:"habits"`
	Categories  map[string]models.Category   `json:"categories"`
	Completions map[string]models.Completion `json:"completions"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: Settings{
			Theme: "dark",
		},
		Habits:      make(map[string]models.Habit),
		Categories:  make(map[string]models.Category),
		Completions: make(map[string]models.Completion),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ownit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Categories == nil {
		s.store.Categories = make(map[string]models.Category)
	}
	if s.store.Completions == nil {
		s.store.Completions = make(map[string]models.Completion)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		habits = append(habits, habit)
	}

	// Newest first, stable across runs
	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.After(habits[j].CreatedAt)
		}
		return habits[i].ID < habits[j].ID
	})

	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit not found: %s", id)
	}

	delete(s.store.Habits, id)
	return s.save()
}

func (s *JSONStore) AddCategory(category models.Category) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Categories[category.ID] = category
	return s.save()
}

func (s *JSONStore) GetCategory(id string) (models.Category, error) {
	if s.store == nil {
		return models.Category{}, fmt.Errorf("storage not loaded")
	}

	category, ok := s.store.Categories[id]
	if !ok {
		return models.Category{}, fmt.Errorf("category not found: %s", id)
	}

	return category, nil
}

func (s *JSONStore) GetAllCategories() ([]models.Category, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	categories := make([]models.Category, 0, len(s.store.Categories))
	for _, category := range s.store.Categories {
		categories = append(categories, category)
	}

	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].CreatedAt.Equal(categories[j].CreatedAt) {
			return categories[i].CreatedAt.After(categories[j].CreatedAt)
		}
		return categories[i].ID < categories[j].ID
	})

	return categories, nil
}

func (s *JSONStore) UpdateCategory(category models.Category) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Categories[category.ID]; !ok {
		return fmt.Errorf("category not found: %s", category.ID)
	}

	s.store.Categories[category.ID] = category
	return s.save()
}

func (s *JSONStore) DeleteCategory(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Categories[id]; !ok {
		return fmt.Errorf("category not found: %s", id)
	}

	delete(s.store.Categories, id)
	return s.save()
}

func (s *JSONStore) AddCompletion(completion models.Completion) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Completions[completion.ID] = completion
	return s.save()
}

func (s *JSONStore) GetCompletion(id string) (models.Completion, error) {
	if s.store == nil {
		return models.Completion{}, fmt.Errorf("storage not loaded")
	}

	completion, ok := s.store.Completions[id]
	if !ok {
		return models.Completion{}, fmt.Errorf("completion not found: %s", id)
	}

	return completion, nil
}

func (s *JSONStore) GetCompletionForDay(habitID, day string) (models.Completion, error) {
	if s.store == nil {
		return models.Completion{}, fmt.Errorf("storage not loaded")
	}

	for _, completion := range s.store.Completions {
		if completion.HabitID == habitID && completion.Date == day {
			return completion, nil
		}
	}

	return models.Completion{}, fmt.Errorf("no completion for habit %s on %s", habitID, day)
}

func (s *JSONStore) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var completions []models.Completion
	for _, completion := range s.store.Completions {
		if completion.HabitID == habitID {
			completions = append(completions, completion)
		}
	}

	sort.Slice(completions, func(i, j int) bool {
		return utils.SortDateKeysDesc(completions[i].Date, completions[j].Date)
	})

	return completions, nil
}

func (s *JSONStore) GetAllCompletions() ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	completions := make([]models.Completion, 0, len(s.store.Completions))
	for _, completion := range s.store.Completions {
		completions = append(completions, completion)
	}

	sort.Slice(completions, func(i, j int) bool {
		return utils.SortDateKeysDesc(completions[i].Date, completions[j].Date)
	})

	return completions, nil
}

func (s *JSONStore) DeleteCompletion(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Completions[id]; !ok {
		return fmt.Errorf("completion not found: %s", id)
	}

	delete(s.store.Completions, id)
	return s.save()
}

func (s *JSONStore) DeleteCompletionsForHabit(habitID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for id, completion := range s.store.Completions {
		if completion.HabitID == habitID {
			delete(s.store.Completions, id)
		}
	}

	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
