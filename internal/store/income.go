package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wishflow/wishflow/internal/model"
)

// IncomeStore holds income source definitions and their attendance ledger.
// Every query filters by user_id; no operation crosses user boundaries.
type IncomeStore struct {
	db *sql.DB
}

func NewIncomeStore(db *sql.DB) *IncomeStore {
	return &IncomeStore{db: db}
}

func scanIncome(scanner interface{ Scan(...any) error }) (*model.IncomeSource, error) {
	var src model.IncomeSource
	err := scanner.Scan(&src.ID, &src.Title, &src.DailyAmount, &src.UserID, &src.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &src, nil
}

const incomeCols = `id, title, daily_amount, user_id, created_at`

func (s *IncomeStore) Create(title string, dailyAmount decimal.Decimal, userID string) (*model.IncomeSource, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("daily_amount", dailyAmount); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO income (title, daily_amount, user_id) VALUES (?, ?, ?)`,
		title, dailyAmount, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert income: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *IncomeStore) GetByID(id int64, userID string) (*model.IncomeSource, error) {
	row := s.db.QueryRow(
		`SELECT `+incomeCols+` FROM income WHERE id = ? AND user_id = ?`, id, userID,
	)
	src, err := scanIncome(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get income: %w", err)
	}
	return src, nil
}

// List returns the user's income sources, most recently created first.
func (s *IncomeStore) List(userID string) ([]model.IncomeSource, error) {
	rows, err := s.db.Query(
		`SELECT `+incomeCols+` FROM income WHERE user_id = ? ORDER BY id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var sources []model.IncomeSource
	for rows.Next() {
		src, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		sources = append(sources, *src)
	}
	return sources, rows.Err()
}

// Update edits title and daily amount. Already-recorded attendance keeps the
// amount it was credited with; only future check-ins see the new value.
func (s *IncomeStore) Update(id int64, userID, title string, dailyAmount decimal.Decimal) (*model.IncomeSource, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("daily_amount", dailyAmount); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`UPDATE income SET title = ?, daily_amount = ? WHERE id = ? AND user_id = ?`,
		title, dailyAmount, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update income: %w", err)
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

// Delete removes the definition only. Attendance history stays behind as
// valid ledger rows and keeps counting toward the pool.
func (s *IncomeStore) Delete(id int64, userID string) error {
	result, err := s.db.Exec(`DELETE FROM income WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
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

func scanAttendance(scanner interface{ Scan(...any) error }) (*model.AttendanceEvent, error) {
	var ev model.AttendanceEvent
	err := scanner.Scan(&ev.ID, &ev.IncomeID, &ev.Date, &ev.EarnedAmount, &ev.UserID)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

const attendanceCols = `id, income_id, date, earned_amount, user_id`

// RecordAttendance records a check-in for one calendar day. The credited
// amount is the source's daily amount at this moment, fixed permanently.
// A repeat call for the same (source, date, user) is a no-op: the returned
// bool is false and the already-recorded event comes back unchanged.
func (s *IncomeStore) RecordAttendance(incomeID int64, date, userID string) (*model.AttendanceEvent, bool, error) {
	if err := validateDate(date); err != nil {
		return nil, false, err
	}

	src, err := s.GetByID(incomeID, userID)
	if err != nil {
		return nil, false, err
	}
	if src == nil {
		return nil, false, ErrNotFound
	}

	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO attendance (income_id, date, earned_amount, user_id) VALUES (?, ?, ?, ?)`,
		incomeID, date, src.DailyAmount, userID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert attendance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT `+attendanceCols+` FROM attendance WHERE income_id = ? AND date = ? AND user_id = ?`,
		incomeID, date, userID,
	)
	ev, err := scanAttendance(row)
	if err != nil {
		return nil, false, fmt.Errorf("get attendance: %w", err)
	}
	return ev, n > 0, nil
}

// ListAttendance returns the user's full attendance history, newest day first.
func (s *IncomeStore) ListAttendance(userID string) ([]model.AttendanceEvent, error) {
	rows, err := s.db.Query(
		`SELECT `+attendanceCols+` FROM attendance WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var events []model.AttendanceEvent
	for rows.Next() {
		ev, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}
