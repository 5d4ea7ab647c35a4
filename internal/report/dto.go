package report

import (
	"net/url"
	"time"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/core/common/validation"
)

type MonthlyQuery struct {
	Year *int
}

type CategoryQuery struct {
	Start *time.Time
	End   *time.Time
}

func ParseMonthlyQuery(q url.Values) (MonthlyQuery, *internal.AppError) {
	p := validation.NewQueryParser(q)
	var query MonthlyQuery
	if year := p.Int("year", 0, 1, 9999, internal.ErrCodeInvalidDate); year != 0 {
		query.Year = &year
	}
	if err := p.Err(); err != nil {
		return MonthlyQuery{}, err
	}
	return query, nil
}

func ParseCategoryQuery(q url.Values) (CategoryQuery, *internal.AppError) {
	p := validation.NewQueryParser(q)
	query := CategoryQuery{
		Start: p.Date("start"),
		End:   p.Date("end"),
	}
	p.DateRange(query.Start, query.End)
	if err := p.Err(); err != nil {
		return CategoryQuery{}, err
	}
	return query, nil
}
