package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HabitTask is a repeatable habit. Completing it for a day credits
// RewardAmount to the user's pool.
type HabitTask struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	RewardAmount decimal.Decimal `json:"reward_amount"`
	UserID       string          `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// HabitCheckin is one completion of a task on a calendar day. RewardAmount is
// snapshotted at check-in time, same as AttendanceEvent.EarnedAmount.
type HabitCheckin struct {
	ID           int64           `json:"id"`
	TaskID       int64           `json:"task_id"`
	Date         string          `json:"date"`
	RewardAmount decimal.Decimal `json:"reward_amount"`
	UserID       string          `json:"user_id"`
}
