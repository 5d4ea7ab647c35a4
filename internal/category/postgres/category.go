package postgres

import (
	"context"
	"errors"

	categoryDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-api/internal/observability"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db   *gorm.DB
	prom *observability.Prom
}

// NewCategoryRepository creates a category repository. prom may be nil.
func NewCategoryRepository(db *gorm.DB, prom *observability.Prom) *CategoryRepository {
	return &CategoryRepository{db: db, prom: prom}
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.prom.ObserveDB("category_list", func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&categories).Error
	})
	return categories, err
}

func (r *CategoryRepository) GetByName(ctx context.Context, userID int64, name string) (*categoryDatamodel.Category, error) {
	return r.first(ctx, "category_get_by_name", "user_id = ? AND name = ?", userID, name)
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID, id int64) (*categoryDatamodel.Category, error) {
	return r.first(ctx, "category_get", "id = ? AND user_id = ?", id, userID)
}

// first returns nil, nil when nothing matches.
func (r *CategoryRepository) first(ctx context.Context, op, where string, args ...interface{}) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.prom.ObserveDB(op, func() error {
		return r.db.WithContext(ctx).Where(where, args...).First(&cat).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.prom.ObserveDB("category_create", func() error {
		return r.db.WithContext(ctx).Create(cat).Error
	})
}

func (r *CategoryRepository) Update(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.prom.ObserveDB("category_update", func() error {
		return r.db.WithContext(ctx).
			Model(cat).
			Where("user_id = ?", cat.UserID).
			Select("name", "color", "updated_at").
			Updates(cat).Error
	})
}

// Delete detaches the category from the owner's expenses and removes it in
// one transaction.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id int64) error {
	return r.prom.ObserveDB("category_delete", func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&expenseDatamodel.Expense{}).
				Where("category_id = ? AND user_id = ?", id, userID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			return tx.Where("id = ? AND user_id = ?", id, userID).
				Delete(&categoryDatamodel.Category{}).Error
		})
	})
}
