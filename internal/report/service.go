package report

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/expense-api/internal"
)

type RepositoryAPI interface {
	MonthlyTotals(ctx context.Context, userID int64, query MonthlyQuery) ([]MonthlyTotal, error)
	CategoryTotals(ctx context.Context, userID int64, query CategoryQuery) ([]CategorySum, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// MonthlyTotals is ordered by year, month and currency.
func (s *Service) MonthlyTotals(ctx context.Context, userID int64, query MonthlyQuery) ([]MonthlyTotal, error) {
	rows, err := s.repo.MonthlyTotals(ctx, userID, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to compute monthly totals", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to compute monthly totals", err)
	}
	if rows == nil {
		rows = []MonthlyTotal{}
	}
	return rows, nil
}

// CategoryTotals is ordered by total, largest first.
func (s *Service) CategoryTotals(ctx context.Context, userID int64, query CategoryQuery) ([]CategorySum, error) {
	rows, err := s.repo.CategoryTotals(ctx, userID, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to compute category totals", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to compute category totals", err)
	}
	if rows == nil {
		rows = []CategorySum{}
	}
	return rows, nil
}
