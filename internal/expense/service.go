package expense

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/core/common/dberr"
	expenseDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/expense"
)

// RepositoryAPI is owner-scoped. GetByID returns nil, nil when the expense
// does not exist or belongs to someone else.
type RepositoryAPI interface {
	Create(ctx context.Context, expense *expenseDatamodel.Expense) error
	GetByID(ctx context.Context, userID, id int64) (*expenseDatamodel.Expense, error)
	List(ctx context.Context, userID int64, filter ListFilter) ([]*expenseDatamodel.Expense, error)
	Update(ctx context.Context, expense *expenseDatamodel.Expense) error
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

var errUnknownCategory = internal.NewValidationFieldError("category_id", "category_id does not reference an existing category", internal.ErrCodeInvalidCategory)

// Service handles expense business logic
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

// Create stores a new expense owned by userID.
func (s *Service) Create(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := ToDataModel(NewExpense(userID, dto))
	if err := s.repo.Create(ctx, row); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return nil, errUnknownCategory
		}
		s.logger.ErrorContext(ctx, "failed to create expense", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.InfoContext(ctx, "expense created",
		"expense_id", row.ID,
		"user_id", userID,
		"amount", row.Amount.String(),
		"status", row.Status)

	return FromDataModel(row), nil
}

// List returns one page of the user's expenses, most recent first.
func (s *Service) List(ctx context.Context, userID int64, filter ListFilter) ([]*Expense, error) {
	rows, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list expenses", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Expense, error) {
	row, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to load expense", err)
	}
	if row == nil {
		return nil, internal.ErrExpenseNotFound
	}
	return FromDataModel(row), nil
}

// Update applies a partial update. Keys missing from the payload keep their
// stored value.
func (s *Service) Update(ctx context.Context, userID, id int64, dto UpdateExpenseDTO) (*Expense, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	current.Apply(dto)

	row := ToDataModel(current)
	if err := s.repo.Update(ctx, row); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return nil, errUnknownCategory
		}
		s.logger.ErrorContext(ctx, "failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to update expense", err)
	}

	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete expense", "error", err, "expense_id", id)
		return internal.NewInternalError("failed to delete expense", err)
	}
	if !deleted {
		return internal.ErrExpenseNotFound
	}
	return nil
}
