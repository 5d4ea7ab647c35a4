package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-api/internal/auth"
	"github.com/frahmantamala/expense-api/internal/category"
	"github.com/frahmantamala/expense-api/internal/expense"
	"github.com/frahmantamala/expense-api/internal/observability"
	"github.com/frahmantamala/expense-api/internal/report"
	"github.com/frahmantamala/expense-api/internal/transport/middleware"
	"github.com/frahmantamala/expense-api/internal/transport/swagger"
	"github.com/frahmantamala/expense-api/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Category *category.Handler
	Expense  *expense.Handler
	Report   *report.Handler
}

type RouterOptions struct {
	DB     *sql.DB
	Logger *slog.Logger
	Prom   *observability.Prom
	// Metrics is mounted at MetricsPath when set.
	Metrics     http.Handler
	MetricsPath string
	// TracingService enables the tracing middleware when set.
	TracingService string
	// MaxBodyBytes caps request bodies. Zero leaves them uncapped.
	MaxBodyBytes int64
}

func RegisterAllRoutes(router *chi.Mux, opts RouterOptions, h Handlers) {
	system := NewSystemHandler(opts.DB, opts.Logger)

	router.Use(middleware.RequestID)
	if opts.TracingService != "" {
		router.Use(middleware.Tracing(opts.TracingService))
	}
	router.Use(opts.Prom.HTTPMiddleware)
	router.Use(middleware.MaxBodyBytes(opts.MaxBodyBytes))
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware(opts.Logger))

	router.NotFound(system.NotFound)
	router.MethodNotAllowed(system.MethodNotAllowed)

	router.Get("/health", system.Liveness)
	router.Get("/health/ready", system.Readiness)
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, opts.Metrics)
	}

	router.Get("/openapi.yml", swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(h.Auth.AuthMiddleware).Get("/me", h.User.GetCurrentUser)
	})

	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)

		pr.Route("/categories", func(cr chi.Router) {
			cr.Post("/", h.Category.CreateCategory)
			cr.Get("/", h.Category.ListCategories)
			cr.Get("/{id}", h.Category.GetCategory)
			cr.Put("/{id}", h.Category.UpdateCategory)
			cr.Delete("/{id}", h.Category.DeleteCategory)
		})

		pr.Route("/expenses", func(er chi.Router) {
			er.Post("/", h.Expense.CreateExpense)
			er.Get("/", h.Expense.ListExpenses)
			er.Get("/summary/monthly", h.Report.MonthlySummary)
			er.Get("/summary/by-category", h.Report.CategorySummary)
			er.Get("/{id}", h.Expense.GetExpense)
			er.Put("/{id}", h.Expense.UpdateExpense)
			er.Delete("/{id}", h.Expense.DeleteExpense)
		})
	})
}
