package report

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/transport"
	"github.com/frahmantamala/expense-api/pkg/logger"
)

type ServiceAPI interface {
	MonthlyTotals(ctx context.Context, userID int64, query MonthlyQuery) ([]MonthlyTotal, error)
	CategoryTotals(ctx context.Context, userID int64, query CategoryQuery) ([]CategorySum, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// MonthlySummary handles GET /expenses/summary/monthly?year=
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	query, appErr := ParseMonthlyQuery(r.URL.Query())
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	totals, err := h.Service.MonthlyTotals(r.Context(), user.ID, query)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, totals)
}

// CategorySummary handles GET /expenses/summary/by-category?start=&end=
func (h *Handler) CategorySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	query, appErr := ParseCategoryQuery(r.URL.Query())
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	totals, err := h.Service.CategoryTotals(r.Context(), user.ID, query)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, totals)
}
