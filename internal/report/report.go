package report

import (
	"github.com/shopspring/decimal"
)

// MonthlyTotal is the sum of non-cancelled expenses for one calendar month
// in one currency.
type MonthlyTotal struct {
	Year        int             `json:"year" db:"year"`
	Month       int             `json:"month" db:"month"`
	Currency    string          `json:"currency" db:"currency"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
}

// CategorySum is the sum of non-cancelled expenses for one category. A nil
// CategoryID is the uncategorized bucket.
type CategorySum struct {
	CategoryID   *int64          `json:"category_id" db:"category_id"`
	CategoryName *string         `json:"category_name" db:"category_name"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
}
