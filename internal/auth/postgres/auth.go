package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-api/internal/observability"
	"gorm.io/gorm"
)

type Repository struct {
	db   *gorm.DB
	prom *observability.Prom
}

// NewRepository creates the credential store. prom may be nil.
func NewRepository(db *gorm.DB, prom *observability.Prom) *Repository {
	return &Repository{
		db:   db,
		prom: prom,
	}
}

// GetByEmail returns nil, nil when the email is unknown.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.prom.ObserveDB("user_get_by_email", func() error {
		return r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.prom.ObserveDB("user_create", func() error {
		return r.db.WithContext(ctx).Create(u).Error
	})
}
