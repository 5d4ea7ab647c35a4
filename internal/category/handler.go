package category

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/transport"
	"github.com/frahmantamala/expense-api/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error)
	List(ctx context.Context, userID int64) ([]*Category, error)
	Get(ctx context.Context, userID, id int64) (*Category, error)
	Update(ctx context.Context, userID, id int64, dto UpdateCategoryDTO) (*Category, error)
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

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	var dto CreateCategoryDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	created, err := h.Service.Create(r.Context(), user.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	logger.From(r.Context()).Info("CreateCategory: category created", "category_id", created.ID)
	h.WriteJSON(w, http.StatusCreated, created.ToResponse())
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	categories, err := h.Service.List(r.Context(), user.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(categories))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
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

	var dto UpdateCategoryDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	updated, err := h.Service.Update(r.Context(), user.ID, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated.ToResponse())
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
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

	logger.From(r.Context()).Info("DeleteCategory: category deleted", "category_id", id)
	w.WriteHeader(http.StatusNoContent)
}
