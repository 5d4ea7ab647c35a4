package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	errors "github.com/frahmantamala/expense-api/internal"
	"github.com/shopspring/decimal"
)

// QueryParser reads optional query parameters and collects one error per
// parameter instead of stopping at the first bad value.
type QueryParser struct {
	values url.Values
	errs   []errors.ValidationError
}

func NewQueryParser(values url.Values) *QueryParser {
	return &QueryParser{values: values}
}

func (p *QueryParser) raw(name string) (string, bool) {
	v := strings.TrimSpace(p.values.Get(name))
	return v, v != ""
}

func (p *QueryParser) fail(name, message string, code errors.ErrorCode) {
	p.errs = append(p.errs, errors.ValidationError{Field: name, Message: message, Code: string(code)})
}

func (p *QueryParser) Date(name string) *time.Time {
	raw, ok := p.raw(name)
	if !ok {
		return nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		p.fail(name, fmt.Sprintf("%s must be a date formatted YYYY-MM-DD", name), errors.ErrCodeInvalidDate)
		return nil
	}
	return &t
}

// Int returns def when the parameter is absent.
func (p *QueryParser) Int(name string, def, min, max int, code errors.ErrorCode) int {
	raw, ok := p.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		p.fail(name, fmt.Sprintf("%s must be an integer between %d and %d", name, min, max), code)
		return def
	}
	return n
}

func (p *QueryParser) Int64(name string, min int64) *int64 {
	raw, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < min {
		p.fail(name, fmt.Sprintf("%s must be an integer of at least %d", name, min), errors.ErrCodeValidationFailed)
		return nil
	}
	return &n
}

func (p *QueryParser) Decimal(name string) *decimal.Decimal {
	raw, ok := p.raw(name)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail(name, fmt.Sprintf("%s must be a decimal number", name), errors.ErrCodeInvalidAmount)
		return nil
	}
	if appErr := ValidateAmount(name, d); appErr != nil {
		p.errs = append(p.errs, appErr.Details.(errors.ValidationErrors).Errors...)
		return nil
	}
	return &d
}

func (p *QueryParser) OneOf(name string, code errors.ErrorCode, allowed ...string) *string {
	raw, ok := p.raw(name)
	if !ok {
		return nil
	}
	for _, a := range allowed {
		if raw == a {
			return &raw
		}
	}
	p.fail(name, fmt.Sprintf("%s must be one of %s", name, strings.Join(allowed, ", ")), code)
	return nil
}

// DateRange rejects a start that falls after end. Either bound may be open.
func (p *QueryParser) DateRange(start, end *time.Time) {
	if start != nil && end != nil && start.After(*end) {
		p.fail("start", "start must not be after end", errors.ErrCodeInvalidDateRange)
	}
}

func (p *QueryParser) Err() *errors.AppError {
	if len(p.errs) == 0 {
		return nil
	}
	return errors.NewValidationErrors(p.errs)
}
