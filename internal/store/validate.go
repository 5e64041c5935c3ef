package store

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Calendar days are stored as bare YYYY-MM-DD strings, no time component.
const dateLayout = "2006-01-02"

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Msg: "must not be empty"}
	}
	return title, nil
}

func validateAmount(field string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: field, Msg: "must be positive"}
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	return nil
}

func validateUserID(userID string) error {
	if userID == "" {
		return &ValidationError{Field: "user", Msg: "must not be empty"}
	}
	return nil
}
