package expense

import (
	"time"

	"github.com/frahmantamala/expense-api/internal/core/common/validation"
	expenseDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/expense"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodPix      PaymentMethod = "PIX"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix, PaymentMethodTransfer:
		return true
	}
	return false
}

type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

const DefaultCurrency = "BRL"

var (
	PaymentMethods = []string{string(PaymentMethodCash), string(PaymentMethodCard), string(PaymentMethodPix), string(PaymentMethodTransfer)}
	Statuses       = []string{string(StatusPlanned), string(StatusPaid), string(StatusCancelled)}
)

type Expense struct {
	ID            int64
	UserID        int64
	CategoryID    *int64
	Amount        decimal.Decimal
	Currency      string
	Description   *string
	Date          time.Time
	PaidAt        *time.Time
	PaymentMethod PaymentMethod
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewExpense builds an expense from a validated payload, filling in the
// currency, payment method and status defaults.
func NewExpense(userID int64, dto CreateExpenseDTO) *Expense {
	now := time.Now()

	date, _ := validation.ParseDate(dto.Date)
	e := &Expense{
		UserID:        userID,
		CategoryID:    dto.CategoryID,
		Amount:        *dto.Amount,
		Currency:      DefaultCurrency,
		Description:   dto.Description,
		Date:          date,
		PaymentMethod: PaymentMethodCard,
		Status:        StatusPlanned,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if dto.Currency != "" {
		e.Currency = dto.Currency
	}
	if dto.PaymentMethod != "" {
		e.PaymentMethod = PaymentMethod(dto.PaymentMethod)
	}
	if dto.Status != "" {
		e.Status = Status(dto.Status)
	}
	if dto.PaidAt != nil {
		paidAt, _ := validation.ParseTimestamp(*dto.PaidAt)
		e.PaidAt = &paidAt
	}
	return e
}

// Apply overwrites only the fields present in the payload.
func (e *Expense) Apply(dto UpdateExpenseDTO) {
	if dto.CategoryID.Set {
		e.CategoryID = dto.CategoryID.Ptr()
	}
	if dto.Amount.Set {
		e.Amount = dto.Amount.Value
	}
	if dto.Currency.Set {
		e.Currency = dto.Currency.Value
	}
	if dto.Description.Set {
		e.Description = dto.Description.Ptr()
	}
	if dto.Date.Set {
		e.Date, _ = validation.ParseDate(dto.Date.Value)
	}
	if dto.PaidAt.Set {
		if dto.PaidAt.Null {
			e.PaidAt = nil
		} else {
			paidAt, _ := validation.ParseTimestamp(dto.PaidAt.Value)
			e.PaidAt = &paidAt
		}
	}
	if dto.PaymentMethod.Set {
		e.PaymentMethod = PaymentMethod(dto.PaymentMethod.Value)
	}
	if dto.Status.Set {
		e.Status = Status(dto.Status.Value)
	}
	e.UpdatedAt = time.Now()
}

func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		Date:          e.Date.Format(validation.DateLayout),
		PaidAt:        e.PaidAt,
		PaymentMethod: string(e.PaymentMethod),
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:            e.ID,
		UserID:        e.UserID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		Date:          e.Date,
		PaidAt:        e.PaidAt,
		PaymentMethod: string(e.PaymentMethod),
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:            e.ID,
		UserID:        e.UserID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		Date:          e.Date.UTC(),
		PaidAt:        e.PaidAt,
		PaymentMethod: PaymentMethod(e.PaymentMethod),
		Status:        Status(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}

func ToResponses(expenses []*Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, e.ToResponse())
	}
	return responses
}
