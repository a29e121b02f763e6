package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ownitapp/ownit/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category_id TEXT,
	schedule_type TEXT NOT NULL,
	schedule_weekdays TEXT,
	schedule_monthdays TEXT,
	reminder_enabled INTEGER NOT NULL DEFAULT 0,
	reminder_time TEXT,
	reminder_weekdays TEXT,
	requires_note INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS completions (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	UNIQUE(habit_id, day)
);
CREATE INDEX IF NOT EXISTS idx_completions_habit_day ON completions(habit_id, day);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(Settings{Theme: "dark"}); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'ownit init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; this also upgrades stores created by
	// older versions that lack newer tables.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "theme":
			settings.Theme = value
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", "theme", settings.Theme)
	return err
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.writeHabit(habit, false)
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	return s.writeHabit(habit, true)
}

func (s *SQLiteStore) writeHabit(habit models.Habit, mustExist bool) error {
	if mustExist {
		var exists int
		err := s.db.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", habit.ID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("habit not found: %s", habit.ID)
		}
	}

	weekdaysJSON, err := json.Marshal(habit.Schedule.DaysOfWeek)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule weekdays: %w", err)
	}
	monthdaysJSON, err := json.Marshal(habit.Schedule.DaysOfMonth)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule month days: %w", err)
	}

	var categoryID sql.NullString
	if habit.CategoryID != nil {
		categoryID = sql.NullString{String: *habit.CategoryID, Valid: true}
	}

	reminderEnabled := false
	var reminderTime, reminderWeekdays string
	if habit.Reminder != nil {
		reminderEnabled = habit.Reminder.Enabled
		reminderTime = habit.Reminder.Time
		data, err := json.Marshal(habit.Reminder.DaysOfWeek)
		if err != nil {
			return fmt.Errorf("failed to marshal reminder weekdays: %w", err)
		}
		reminderWeekdays = string(data)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO habits (
			id, name, category_id, schedule_type, schedule_weekdays, schedule_monthdays,
			reminder_enabled, reminder_time, reminder_weekdays, requires_note, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, categoryID, habit.Schedule.Type, string(weekdaysJSON), string(monthdaysJSON),
		reminderEnabled, reminderTime, reminderWeekdays, habit.RequiresNote,
		habit.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var categoryID sql.NullString
	var scheduleType, scheduleWeekdays, scheduleMonthdays string
	var reminderEnabled, requiresNote bool
	var reminderTime, reminderWeekdays, createdAt string

	err := row.Scan(
		&h.ID, &h.Name, &categoryID, &scheduleType, &scheduleWeekdays, &scheduleMonthdays,
		&reminderEnabled, &reminderTime, &reminderWeekdays, &requiresNote, &createdAt,
	)
	if err != nil {
		return models.Habit{}, err
	}

	h.Schedule.Type = models.ScheduleType(scheduleType)
	h.RequiresNote = requiresNote

	if categoryID.Valid {
		h.CategoryID = &categoryID.String
	}

	if scheduleWeekdays != "" {
		var weekdays []int
		if err := json.Unmarshal([]byte(scheduleWeekdays), &weekdays); err == nil {
			for _, w := range weekdays {
				h.Schedule.DaysOfWeek = append(h.Schedule.DaysOfWeek, time.Weekday(w))
			}
		}
	}
	if scheduleMonthdays != "" {
		var monthdays []int
		if err := json.Unmarshal([]byte(scheduleMonthdays), &monthdays); err == nil {
			h.Schedule.DaysOfMonth = monthdays
		}
	}

	if reminderEnabled || reminderTime != "" {
		reminder := &models.Reminder{
			Enabled: reminderEnabled,
			Time:    reminderTime,
		}
		if reminderWeekdays != "" {
			var weekdays []int
			if err := json.Unmarshal([]byte(reminderWeekdays), &weekdays); err == nil {
				for _, w := range weekdays {
					reminder.DaysOfWeek = append(reminder.DaysOfWeek, time.Weekday(w))
				}
			}
		}
		h.Reminder = reminder
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		h.CreatedAt = t
	}

	return h, nil
}

const habitColumns = `id, name, category_id, schedule_type, schedule_weekdays, schedule_monthdays,
	reminder_enabled, reminder_time, reminder_weekdays, requires_note, created_at`

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)
	habit, err := s.scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, fmt.Errorf("habit not found: %s", id)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT " + habitColumns + " FROM habits ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := s.scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddCategory(category models.Category) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO categories (id, name, created_at) VALUES (?, ?, ?)",
		category.ID, category.Name, category.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetCategory(id string) (models.Category, error) {
	var c models.Category
	var createdAt string
	err := s.db.QueryRow("SELECT id, name, created_at FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Category{}, fmt.Errorf("category not found: %s", id)
		}
		return models.Category{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func (s *SQLiteStore) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM categories ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			c.CreatedAt = t
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *SQLiteStore) UpdateCategory(category models.Category) error {
	res, err := s.db.Exec("UPDATE categories SET name = ? WHERE id = ?", category.Name, category.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category not found: %s", category.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteCategory(id string) error {
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddCompletion(completion models.Completion) error {
	_, err := s.db.Exec(
		"INSERT INTO completions (id, habit_id, day, note, created_at) VALUES (?, ?, ?, ?, ?)",
		completion.ID, completion.HabitID, completion.Date, completion.Note,
		completion.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetCompletion(id string) (models.Completion, error) {
	var c models.Completion
	var createdAt string
	err := s.db.QueryRow("SELECT id, habit_id, day, note, created_at FROM completions WHERE id = ?", id).
		Scan(&c.ID, &c.HabitID, &c.Date, &c.Note, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Completion{}, fmt.Errorf("completion not found: %s", id)
		}
		return models.Completion{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func (s *SQLiteStore) GetCompletionForDay(habitID, day string) (models.Completion, error) {
	var c models.Completion
	var createdAt string
	err := s.db.QueryRow(
		"SELECT id, habit_id, day, note, created_at FROM completions WHERE habit_id = ? AND day = ?",
		habitID, day,
	).Scan(&c.ID, &c.HabitID, &c.Date, &c.Note, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Completion{}, fmt.Errorf("no completion for habit %s on %s", habitID, day)
		}
		return models.Completion{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func (s *SQLiteStore) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.queryCompletions("SELECT id, habit_id, day, note, created_at FROM completions WHERE habit_id = ? ORDER BY day DESC", habitID)
}

func (s *SQLiteStore) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions("SELECT id, habit_id, day, note, created_at FROM completions ORDER BY day DESC")
}

func (s *SQLiteStore) queryCompletions(query string, args ...any) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		var createdAt string
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &c.Note, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			c.CreatedAt = t
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func (s *SQLiteStore) DeleteCompletion(id string) error {
	res, err := s.db.Exec("DELETE FROM completions WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("completion not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) DeleteCompletionsForHabit(habitID string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE habit_id = ?", habitID)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
