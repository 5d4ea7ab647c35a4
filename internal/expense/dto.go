package expense

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/core/common/patch"
	"github.com/frahmantamala/expense-api/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

const (
	maxDescriptionLength = 500
	defaultPageSize      = 20
	maxPageSize          = 200
)

type ExpenseResponse struct {
	ID            int64           `json:"id"`
	CategoryID    *int64          `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   *string         `json:"description"`
	Date          string          `json:"date"`
	PaidAt        *time.Time      `json:"paid_at"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateExpenseDTO is the POST /expenses payload. Empty currency, payment
// method and status fall back to their defaults.
type CreateExpenseDTO struct {
	CategoryID    *int64           `json:"category_id" validate:"omitnil,gt=0"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Currency      string           `json:"currency" validate:"omitempty,iso4217"`
	Description   *string          `json:"description" validate:"omitnil,max=500"`
	Date          string           `json:"date" validate:"required,datetime=2006-01-02"`
	PaidAt        *string          `json:"paid_at"`
	PaymentMethod string           `json:"payment_method" validate:"omitempty,oneof=CASH CARD PIX TRANSFER"`
	Status        string           `json:"status" validate:"omitempty,oneof=PLANNED PAID CANCELLED"`
}

func (d *CreateExpenseDTO) Normalize() {
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	d.PaymentMethod = strings.ToUpper(strings.TrimSpace(d.PaymentMethod))
	d.Status = strings.ToUpper(strings.TrimSpace(d.Status))
	d.Date = strings.TrimSpace(d.Date)
}

func (d CreateExpenseDTO) Validate() *internal.AppError {
	if err := validation.Struct(d); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("amount", d.Amount).Amount()
	if d.PaidAt != nil {
		v.Field("paid_at", *d.PaidAt).Timestamp()
	}
	return v.Validate()
}

// UpdateExpenseDTO changes only the keys present in the body. Null clears
// category_id, description and paid_at and is rejected for the rest.
type UpdateExpenseDTO struct {
	CategoryID    patch.Field[int64]           `json:"category_id"`
	Amount        patch.Field[decimal.Decimal] `json:"amount"`
	Currency      patch.Field[string]          `json:"currency"`
	Description   patch.Field[string]          `json:"description"`
	Date          patch.Field[string]          `json:"date"`
	PaidAt        patch.Field[string]          `json:"paid_at"`
	PaymentMethod patch.Field[string]          `json:"payment_method"`
	Status        patch.Field[string]          `json:"status"`
}

func (d *UpdateExpenseDTO) Normalize() {
	upper := func(f *patch.Field[string]) {
		if f.Set && !f.Null {
			f.Value = strings.ToUpper(strings.TrimSpace(f.Value))
		}
	}
	upper(&d.Currency)
	upper(&d.PaymentMethod)
	upper(&d.Status)
	if d.Date.Set && !d.Date.Null {
		d.Date.Value = strings.TrimSpace(d.Date.Value)
	}
}

func (d UpdateExpenseDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("category_id", d.CategoryID.Value).
		Present(d.CategoryID.Set && !d.CategoryID.Null).
		Positive()
	v.Field("amount", d.Amount.Value).
		Present(d.Amount.Set).
		NotNull(d.Amount.Null).
		Amount()
	v.Field("currency", d.Currency.Value).
		Present(d.Currency.Set).
		NotNull(d.Currency.Null).
		Currency()
	v.Field("description", d.Description.Value).
		Present(d.Description.Set && !d.Description.Null).
		MaxLength(maxDescriptionLength)
	v.Field("date", d.Date.Value).
		Present(d.Date.Set).
		NotNull(d.Date.Null).
		Date()
	v.Field("paid_at", d.PaidAt.Value).
		Present(d.PaidAt.Set && !d.PaidAt.Null).
		Timestamp()
	v.Field("payment_method", d.PaymentMethod.Value).
		Present(d.PaymentMethod.Set).
		NotNull(d.PaymentMethod.Null).
		OneOf(internal.ErrCodeInvalidPaymentMethod, PaymentMethods...)
	v.Field("status", d.Status.Value).
		Present(d.Status.Set).
		NotNull(d.Status.Null).
		OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	return v.Validate()
}

// ListFilter narrows GET /expenses. Nil bounds are open; all filters are
// AND-combined.
type ListFilter struct {
	Start      *time.Time
	End        *time.Time
	CategoryID *int64
	Status     *Status
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Page       int
	Size       int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Size
}

func ParseListFilter(q url.Values) (ListFilter, *internal.AppError) {
	p := validation.NewQueryParser(q)

	filter := ListFilter{
		Start:     p.Date("start"),
		End:       p.Date("end"),
		MinAmount: p.Decimal("min"),
		MaxAmount: p.Decimal("max"),
		Page:      p.Int("page", 1, 1, math.MaxInt32, internal.ErrCodeInvalidPagination),
		Size:      p.Int("size", defaultPageSize, 1, maxPageSize, internal.ErrCodeInvalidPagination),
	}
	p.DateRange(filter.Start, filter.End)

	// category_id=0 means "any category"
	if id := p.Int64("category_id", 0); id != nil && *id > 0 {
		filter.CategoryID = id
	}
	if status := p.OneOf("status", internal.ErrCodeInvalidStatus, Statuses...); status != nil {
		s := Status(*status)
		filter.Status = &s
	}

	if err := p.Err(); err != nil {
		return ListFilter{}, err
	}
	return filter, nil
}
