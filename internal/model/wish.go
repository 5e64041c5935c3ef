package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WishStatus is the wish lifecycle. Transitions only move forward:
// Locked -> Unlocked (unlock engine), Unlocked -> Completed (user action).
type WishStatus int

const (
	WishLocked WishStatus = iota
	WishUnlocked
	WishCompleted
)

func (s WishStatus) String() string {
	switch s {
	case WishLocked:
		return "locked"
	case WishUnlocked:
		return "unlocked"
	case WishCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Wish is something the user is saving their pool toward. Unlocking reserves
// TargetAmount against the pool; completing is terminal.
type Wish struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Priority     int             `json:"priority"`
	Status       WishStatus      `json:"status"`
	UnlockedAt   *time.Time      `json:"unlocked_at,omitempty"`
	UserID       string          `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PoolBalance is the derived spendable balance for one user, with the sums it
// was derived from. It is computed fresh on every read, never stored.
type PoolBalance struct {
	UserID    string          `json:"user_id"`
	Earned    decimal.Decimal `json:"earned"`
	Habits    decimal.Decimal `json:"habits"`
	Committed decimal.Decimal `json:"committed"`
	Balance   decimal.Decimal `json:"balance"`
}
