package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wishflow/wishflow/internal/model"
)

// WishStore is the wish registry: CRUD over wishes plus the guarded status
// transitions. Only the pool engine moves a wish out of Locked.
type WishStore struct {
	db *sql.DB
}

func NewWishStore(db *sql.DB) *WishStore {
	return &WishStore{db: db}
}

func scanWish(scanner interface{ Scan(...any) error }) (*model.Wish, error) {
	var w model.Wish
	var status int
	var unlockedAt sql.NullTime

	err := scanner.Scan(
		&w.ID, &w.Title, &w.TargetAmount, &w.Priority, &status,
		&unlockedAt, &w.UserID, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Status = model.WishStatus(status)
	if unlockedAt.Valid {
		w.UnlockedAt = &unlockedAt.Time
	}
	return &w, nil
}

const wishCols = `id, title, target_amount, priority, status, unlocked_at, user_id, created_at`

func (s *WishStore) Create(title string, targetAmount decimal.Decimal, priority int, userID string) (*model.Wish, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("target_amount", targetAmount); err != nil {
		return nil, err
	}
	if priority < 0 {
		return nil, &ValidationError{Field: "priority", Msg: "must not be negative"}
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO wishlist (title, target_amount, priority, status, user_id) VALUES (?, ?, ?, 0, ?)`,
		title, targetAmount, priority, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert wish: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *WishStore) GetByID(id int64, userID string) (*model.Wish, error) {
	row := s.db.QueryRow(
		`SELECT `+wishCols+` FROM wishlist WHERE id = ? AND user_id = ?`, id, userID,
	)
	w, err := scanWish(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wish: %w", err)
	}
	return w, nil
}

// List returns the user's wishes ordered by status (locked, unlocked,
// completed), then priority ascending, then id descending. The ordering is
// part of the contract; the dashboard and the tests both depend on it.
func (s *WishStore) List(userID string, includeCompleted bool) ([]model.Wish, error) {
	query := `SELECT ` + wishCols + ` FROM wishlist WHERE user_id = ?`
	if !includeCompleted {
		query += ` AND status != 2`
	}
	query += ` ORDER BY status ASC, priority ASC, id DESC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	defer rows.Close()

	var wishes []model.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		wishes = append(wishes, *w)
	}
	return wishes, rows.Err()
}

// ListLocked returns locked wishes in unlock-scan order: priority ascending,
// older wish first among equal priorities.
func (s *WishStore) ListLocked(userID string) ([]model.Wish, error) {
	rows, err := s.db.Query(
		`SELECT `+wishCols+` FROM wishlist WHERE user_id = ? AND status = 0 ORDER BY priority ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list locked wishes: %w", err)
	}
	defer rows.Close()

	var wishes []model.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		wishes = append(wishes, *w)
	}
	return wishes, rows.Err()
}

// Update edits title, target and priority. Completed wishes are immutable;
// the status filter also makes foreign and missing ids look identical.
// Status itself never changes here.
func (s *WishStore) Update(id int64, userID, title string, targetAmount decimal.Decimal, priority int) (*model.Wish, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("target_amount", targetAmount); err != nil {
		return nil, err
	}
	if priority < 0 {
		return nil, &ValidationError{Field: "priority", Msg: "must not be negative"}
	}

	result, err := s.db.Exec(
		`UPDATE wishlist SET title = ?, target_amount = ?, priority = ? WHERE id = ? AND user_id = ? AND status IN (0, 1)`,
		title, targetAmount, priority, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update wish: %w", err)
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

// Complete marks an unlocked wish as fulfilled. The funds were already spent
// at unlock time. A locked wish cannot be completed directly; it has to pass
// through the unlock engine first.
func (s *WishStore) Complete(id int64, userID string) error {
	result, err := s.db.Exec(
		`UPDATE wishlist SET status = 2 WHERE id = ? AND user_id = ? AND status = 1`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("complete wish: %w", err)
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

func (s *WishStore) Delete(id int64, userID string) error {
	result, err := s.db.Exec(`DELETE FROM wishlist WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete wish: %w", err)
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

// unlockTx transitions one locked wish to unlocked inside the engine's
// transaction. Guarded by status = 0 so a concurrent transition shows up as
// zero rows affected rather than a double unlock.
func unlockTx(tx *sql.Tx, id int64, userID string, now time.Time) error {
	result, err := tx.Exec(
		`UPDATE wishlist SET status = 1, unlocked_at = ? WHERE id = ? AND user_id = ? AND status = 0`,
		now, id, userID,
	)
	if err != nil {
		return fmt.Errorf("unlock wish: %w", err)
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
