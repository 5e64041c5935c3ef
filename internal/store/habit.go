package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wishflow/wishflow/internal/model"
)

// HabitStore holds habit task definitions and their check-in ledger. Edit and
// deletion semantics mirror IncomeStore: check-ins snapshot the reward at
// recording time and survive deletion of the task.
type HabitStore struct {
	db *sql.DB
}

func NewHabitStore(db *sql.DB) *HabitStore {
	return &HabitStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.HabitTask, error) {
	var task model.HabitTask
	err := scanner.Scan(&task.ID, &task.Title, &task.RewardAmount, &task.UserID, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

const taskCols = `id, title, reward_amount, user_id, created_at`

func (s *HabitStore) Create(title string, rewardAmount decimal.Decimal, userID string) (*model.HabitTask, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("reward_amount", rewardAmount); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO habit_task (title, reward_amount, user_id) VALUES (?, ?, ?)`,
		title, rewardAmount, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *HabitStore) GetByID(id int64, userID string) (*model.HabitTask, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM habit_task WHERE id = ? AND user_id = ?`, id, userID,
	)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit task: %w", err)
	}
	return task, nil
}

// List returns the user's habit tasks, most recently created first.
func (s *HabitStore) List(userID string) ([]model.HabitTask, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM habit_task WHERE user_id = ? ORDER BY id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list habit tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.HabitTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (s *HabitStore) Update(id int64, userID, title string, rewardAmount decimal.Decimal) (*model.HabitTask, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("reward_amount", rewardAmount); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`UPDATE habit_task SET title = ?, reward_amount = ? WHERE id = ? AND user_id = ?`,
		title, rewardAmount, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update habit task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id, userID)
}

func (s *HabitStore) Delete(id int64, userID string) error {
	result, err := s.db.Exec(`DELETE FROM habit_task WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete habit task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCheckin(scanner interface{ Scan(...any) error }) (*model.HabitCheckin, error) {
	var ci model.HabitCheckin
	err := scanner.Scan(&ci.ID, &ci.TaskID, &ci.Date, &ci.RewardAmount, &ci.UserID)
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

const checkinCols = `id, task_id, date, reward_amount, user_id`

// RecordCheckin records one completion of a task for a calendar day,
// crediting the task's current reward amount. Repeat calls for the same
// (task, date, user) are no-ops: the bool is false and the existing
// check-in is returned.
func (s *HabitStore) RecordCheckin(taskID int64, date, userID string) (*model.HabitCheckin, bool, error) {
	if err := validateDate(date); err != nil {
		return nil, false, err
	}

	task, err := s.GetByID(taskID, userID)
	if err != nil {
		return nil, false, err
	}
	if task == nil {
		return nil, false, ErrNotFound
	}

	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO habit_checkin (task_id, date, reward_amount, user_id) VALUES (?, ?, ?, ?)`,
		taskID, date, task.RewardAmount, userID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert checkin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT `+checkinCols+` FROM habit_checkin WHERE task_id = ? AND date = ? AND user_id = ?`,
		taskID, date, userID,
	)
	ci, err := scanCheckin(row)
	if err != nil {
		return nil, false, fmt.Errorf("get checkin: %w", err)
	}
	return ci, n > 0, nil
}

// ListCheckins returns the user's check-in history, newest day first.
func (s *HabitStore) ListCheckins(userID string) ([]model.HabitCheckin, error) {
	rows, err := s.db.Query(
		`SELECT `+checkinCols+` FROM habit_checkin WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	var checkins []model.HabitCheckin
	for rows.Next() {
		ci, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		checkins = append(checkins, *ci)
	}
	return checkins, rows.Err()
}
