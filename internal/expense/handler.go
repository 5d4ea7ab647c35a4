package expense

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/transport"
	"github.com/frahmantamala/expense-api/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error)
	List(ctx context.Context, userID int64, filter ListFilter) ([]*Expense, error)
	Get(ctx context.Context, userID, id int64) (*Expense, error)
	Update(ctx context.Context, userID, id int64, dto UpdateExpenseDTO) (*Expense, error)
	Delete(ctx context.Context, userID, id int64) error
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	var dto CreateExpenseDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	created, err := h.Service.Create(r.Context(), user.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created.ToResponse())
}

// ListExpenses handles GET /expenses?start&end&category_id&status&min&max&page&size
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	filter, appErr := ParseListFilter(r.URL.Query())
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	expenses, err := h.Service.List(r.Context(), user.ID, filter)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(expenses))
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	found, err := h.Service.Get(r.Context(), user.ID, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found.ToResponse())
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto UpdateExpenseDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	updated, err := h.Service.Update(r.Context(), user.ID, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	logger.From(r.Context()).Info("UpdateExpense: expense updated", "expense_id", id)
	h.WriteJSON(w, http.StatusOK, updated.ToResponse())
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	if err := h.Service.Delete(r.Context(), user.ID, id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	logger.From(r.Context()).Info("DeleteExpense: expense deleted", "expense_id", id)
	w.WriteHeader(http.StatusNoContent)
}
