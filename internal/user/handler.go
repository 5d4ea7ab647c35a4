package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/transport"
	"github.com/frahmantamala/expense-api/pkg/logger"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /auth/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	current, ok := h.CurrentUser(r)
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	u, err := h.Service.GetByID(r.Context(), current.ID)
	if err != nil {
		logger.From(r.Context()).Error("GetCurrentUser: service GetByID failed", "user_id", current.ID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}
