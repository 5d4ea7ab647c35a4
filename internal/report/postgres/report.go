package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/frahmantamala/expense-api/internal/observability"
	"github.com/frahmantamala/expense-api/internal/report"
	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the aggregate queries over v_expenses_basic.
type ReportRepository struct {
	db   *sqlx.DB
	prom *observability.Prom
}

func NewReportRepository(db *sqlx.DB, prom *observability.Prom) *ReportRepository {
	return &ReportRepository{db: db, prom: prom}
}

func (r *ReportRepository) MonthlyTotals(ctx context.Context, userID int64, query report.MonthlyQuery) ([]report.MonthlyTotal, error) {
	yearExpr, monthExpr := r.datePartExprs()

	where := []string{"user_id = ?", "status <> 'CANCELLED'"}
	args := []interface{}{userID}
	if query.Year != nil {
		where = append(where, yearExpr+" = ?")
		args = append(args, *query.Year)
	}

	stmt := fmt.Sprintf(`
		SELECT %s AS year, %s AS month, currency, SUM(amount) AS total_amount
		FROM v_expenses_basic
		WHERE %s
		GROUP BY 1, 2, 3
		ORDER BY 1, 2, 3`, yearExpr, monthExpr, strings.Join(where, " AND "))

	var totals []report.MonthlyTotal
	err := r.prom.ObserveDB("report_monthly_totals", func() error {
		return r.db.SelectContext(ctx, &totals, r.db.Rebind(stmt), args...)
	})
	return totals, err
}

func (r *ReportRepository) CategoryTotals(ctx context.Context, userID int64, query report.CategoryQuery) ([]report.CategorySum, error) {
	where := []string{"user_id = ?", "status <> 'CANCELLED'"}
	args := []interface{}{userID}
	if query.Start != nil {
		where = append(where, "date >= ?")
		args = append(args, *query.Start)
	}
	if query.End != nil {
		where = append(where, "date <= ?")
		args = append(args, *query.End)
	}

	stmt := fmt.Sprintf(`
		SELECT category_id, category_name, SUM(amount) AS total_amount
		FROM v_expenses_basic
		WHERE %s
		GROUP BY category_id, category_name
		ORDER BY total_amount DESC`, strings.Join(where, " AND "))

	var totals []report.CategorySum
	err := r.prom.ObserveDB("report_category_totals", func() error {
		return r.db.SelectContext(ctx, &totals, r.db.Rebind(stmt), args...)
	})
	return totals, err
}

// datePartExprs returns year and month extraction for the connected dialect.
func (r *ReportRepository) datePartExprs() (string, string) {
	if r.db.DriverName() == "sqlite3" {
		return "CAST(strftime('%Y', date) AS INTEGER)", "CAST(strftime('%m', date) AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM date) AS INTEGER)", "CAST(EXTRACT(MONTH FROM date) AS INTEGER)"
}
