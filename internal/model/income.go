package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeSource is a recurring income definition. Checking in ("attendance")
// against a source credits its DailyAmount to the user's pool.
type IncomeSource struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	DailyAmount decimal.Decimal `json:"daily_amount"`
	UserID      string          `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AttendanceEvent is one check-in against an income source. EarnedAmount is a
// snapshot of the source's daily amount at recording time and never changes,
// even if the source is edited or deleted afterwards.
type AttendanceEvent struct {
	ID           int64           `json:"id"`
	IncomeID     int64           `json:"income_id"`
	Date         string          `json:"date"`
	EarnedAmount decimal.Decimal `json:"earned_amount"`
	UserID       string          `json:"user_id"`
}
