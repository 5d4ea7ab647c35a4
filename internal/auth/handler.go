package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/transport"
	"github.com/frahmantamala/expense-api/pkg/logger"
)

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

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	u, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		logger.From(r.Context()).Warn("registration failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, u.ToResponse())
}

// Login handles POST /auth/login with a form-encoded username and password
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.WriteAppError(w, internal.ErrRequestTooLarge)
			return
		}
		h.WriteAppError(w, internal.ErrInvalidRequestBody.WithCause(err))
		return
	}

	dto := LoginDTO{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	tokens, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		logger.From(r.Context()).Warn("authentication failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// AuthMiddleware resolves the bearer token to an active user and stores it
// in the request context. Every failure is the same 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)

		current, err := h.Service.ResolveToken(r.Context(), token)
		if err != nil {
			logger.From(r.Context()).Warn("auth middleware: rejected request", "error", err)
			h.WriteAppError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), current)
		ctx = logger.With(ctx, "user_id", current.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
