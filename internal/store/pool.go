package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wishflow/wishflow/internal/model"
)

// PoolStore derives the spendable balance from the ledgers and runs the
// greedy unlock engine. The balance is never stored; every read recomputes
// it from the raw rows.
type PoolStore struct {
	db *sql.DB
}

func NewPoolStore(db *sql.DB) *PoolStore {
	return &PoolStore{db: db}
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// sumColumn adds amounts row by row as decimals. Summing in SQL would go
// through float accumulation and amounts like 0.1 would stop adding up
// exactly; per-row values convert to decimal losslessly. An empty result is
// zero, not an error.
func sumColumn(q querier, query, userID string) (decimal.Decimal, error) {
	rows, err := q.Query(query, userID)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(v)
	}
	return sum, rows.Err()
}

const (
	sumAttendanceQuery = `SELECT earned_amount FROM attendance WHERE user_id = ?`
	sumHabitsQuery     = `SELECT reward_amount FROM habit_checkin WHERE user_id = ?`
	sumCommittedQuery  = `SELECT target_amount FROM wishlist WHERE user_id = ? AND status IN (1, 2)`
)

// SumAttendance totals everything the user has earned from income check-ins.
func (s *PoolStore) SumAttendance(userID string) (decimal.Decimal, error) {
	sum, err := sumColumn(s.db, sumAttendanceQuery, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum attendance: %w", err)
	}
	return sum, nil
}

// SumHabits totals everything the user has earned from habit check-ins.
func (s *PoolStore) SumHabits(userID string) (decimal.Decimal, error) {
	sum, err := sumColumn(s.db, sumHabitsQuery, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum habits: %w", err)
	}
	return sum, nil
}

// ComputeBalance returns earned + habit rewards − amounts committed to
// unlocked and completed wishes. Pure read; a query failure propagates
// rather than degrading to zero.
func (s *PoolStore) ComputeBalance(userID string) (*model.PoolBalance, error) {
	return computeBalance(s.db, userID)
}

func computeBalance(q querier, userID string) (*model.PoolBalance, error) {
	earned, err := sumColumn(q, sumAttendanceQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("sum attendance: %w", err)
	}
	habits, err := sumColumn(q, sumHabitsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("sum habits: %w", err)
	}
	committed, err := sumColumn(q, sumCommittedQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("sum committed: %w", err)
	}

	return &model.PoolBalance{
		UserID:    userID,
		Earned:    earned,
		Habits:    habits,
		Committed: committed,
		Balance:   earned.Add(habits).Sub(committed),
	}, nil
}

// GreedyUnlock unlocks as many wishes as the current balance covers, highest
// priority (lowest number) first, older wish first among equal priorities.
// The scan stops at the first wish the remaining balance cannot cover, even
// when cheaper wishes follow it: an expensive high-priority wish deliberately
// blocks everything behind it.
//
// Balance computation, wish scan and unlock writes run in one transaction;
// any failure rolls the whole scan back.
func (s *PoolStore) GreedyUnlock(userID string) ([]int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	pool, err := computeBalance(tx, userID)
	if err != nil {
		return nil, err
	}
	balance := pool.Balance

	rows, err := tx.Query(
		`SELECT id, target_amount FROM wishlist WHERE user_id = ? AND status = 0 ORDER BY priority ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list locked wishes: %w", err)
	}

	type candidate struct {
		id     int64
		target decimal.Decimal
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.target); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate wishes: %w", err)
	}
	rows.Close()

	now := time.Now().UTC()
	var unlocked []int64
	for _, c := range candidates {
		if c.target.GreaterThan(balance) {
			break
		}
		if err := unlockTx(tx, c.id, userID, now); err != nil {
			return nil, err
		}
		balance = balance.Sub(c.target)
		unlocked = append(unlocked, c.id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return unlocked, nil
}

var _ querier = (*sql.DB)(nil)
var _ querier = (*sql.Tx)(nil)
