package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID            int64           `gorm:"primaryKey"`
	UserID        int64           `gorm:"column:user_id;not null;index"`
	CategoryID    *int64          `gorm:"column:category_id;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Currency      string          `gorm:"column:currency;size:3;not null"`
	Description   *string         `gorm:"column:description"`
	Date          time.Time       `gorm:"column:date;type:date;not null"`
	PaidAt        *time.Time      `gorm:"column:paid_at"`
	PaymentMethod string          `gorm:"column:payment_method;size:20;not null"`
	Status        string          `gorm:"column:status;size:20;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
