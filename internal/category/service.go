package category

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/core/common/dberr"
	categoryDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/category"
)

// RepositoryAPI is owner-scoped: every lookup takes the owning user id.
// Lookups return nil, nil when nothing matches.
type RepositoryAPI interface {
	ListByUser(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, userID, id int64) (*categoryDatamodel.Category, error)
	GetByName(ctx context.Context, userID int64, name string) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
	Update(ctx context.Context, category *categoryDatamodel.Category) error
	Delete(ctx context.Context, userID, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, userID, dto.Name, 0); err != nil {
		return nil, err
	}

	row := ToDataModel(NewCategory(userID, dto.Name, dto.Color))
	if err := s.repo.Create(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.ErrCategoryNameConflict
		}
		s.logger.ErrorContext(ctx, "failed to create category", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	return FromDataModel(row), nil
}

// List returns the user's categories ordered by name.
func (s *Service) List(ctx context.Context, userID int64) ([]*Category, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list categories", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list categories", err)
	}

	categories := make([]*Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, FromDataModel(row))
	}
	return categories, nil
}

// Get reports categories owned by someone else as not found.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Category, error) {
	row, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load category", err)
	}
	if row == nil {
		return nil, internal.ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, dto UpdateCategoryDTO) (*Category, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Name.Set && dto.Name.Value != current.Name {
		if err := s.ensureNameAvailable(ctx, userID, dto.Name.Value, id); err != nil {
			return nil, err
		}
		current.Rename(dto.Name.Value)
	}
	if dto.Color.Set {
		current.Recolor(dto.Color.Ptr())
	}

	row := ToDataModel(current)
	if err := s.repo.Update(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.ErrCategoryNameConflict
		}
		s.logger.ErrorContext(ctx, "failed to update category", "category_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update category", err)
	}

	return FromDataModel(row), nil
}

// Delete removes the category. Expenses that referenced it become uncategorized.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete category", "category_id", id, "error", err)
		return internal.NewInternalError("failed to delete category", err)
	}
	return nil
}

// ensureNameAvailable rejects a name already used by another of the user's
// categories. excludeID skips the category being renamed.
func (s *Service) ensureNameAvailable(ctx context.Context, userID int64, name string, excludeID int64) error {
	existing, err := s.repo.GetByName(ctx, userID, name)
	if err != nil {
		return internal.NewInternalError("failed to check category name", err)
	}
	if existing != nil && existing.ID != excludeID {
		return internal.ErrCategoryNameConflict
	}
	return nil
}
