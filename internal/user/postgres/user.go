package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-api/internal/observability"
	"gorm.io/gorm"
)

type UserRepository struct {
	db   *gorm.DB
	prom *observability.Prom
}

func NewUserRepository(db *gorm.DB, prom *observability.Prom) *UserRepository {
	return &UserRepository{db: db, prom: prom}
}

// GetByID returns nil, nil when no user has the id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.prom.ObserveDB("user_get", func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
