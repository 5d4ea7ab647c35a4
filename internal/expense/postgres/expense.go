package postgres

import (
	"context"
	"errors"

	expenseDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-api/internal/expense"
	"github.com/frahmantamala/expense-api/internal/observability"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM
type ExpenseRepository struct {
	db   *gorm.DB
	prom *observability.Prom
}

// NewExpenseRepository creates a new expense repository. prom may be nil.
func NewExpenseRepository(db *gorm.DB, prom *observability.Prom) *ExpenseRepository {
	return &ExpenseRepository{db: db, prom: prom}
}

func (r *ExpenseRepository) Create(ctx context.Context, exp *expenseDatamodel.Expense) error {
	return r.prom.ObserveDB("expense_create", func() error {
		return r.db.WithContext(ctx).Create(exp).Error
	})
}

func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id int64) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.prom.ObserveDB("expense_get", func() error {
		return r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

// List applies the filter and returns one page ordered by date then id,
// both descending.
func (r *ExpenseRepository) List(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expenseDatamodel.Expense, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Start != nil {
		q = q.Where("date >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("date <= ?", *filter.End)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.MinAmount != nil {
		q = q.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q = q.Where("amount <= ?", *filter.MaxAmount)
	}

	var expenses []*expenseDatamodel.Expense
	err := r.prom.ObserveDB("expense_list", func() error {
		return q.Order("date DESC").
			Order("id DESC").
			Limit(filter.Size).
			Offset(filter.Offset()).
			Find(&expenses).Error
	})
	return expenses, err
}

// Update writes every mutable column, including ones set back to NULL.
func (r *ExpenseRepository) Update(ctx context.Context, exp *expenseDatamodel.Expense) error {
	return r.prom.ObserveDB("expense_update", func() error {
		return r.db.WithContext(ctx).
			Model(exp).
			Where("user_id = ?", exp.UserID).
			Select("category_id", "amount", "currency", "description", "date",
				"paid_at", "payment_method", "status", "updated_at").
			Updates(exp).Error
	})
}

// Delete reports whether a row owned by userID was removed.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	var affected int64
	err := r.prom.ObserveDB("expense_delete", func() error {
		res := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&expenseDatamodel.Expense{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
