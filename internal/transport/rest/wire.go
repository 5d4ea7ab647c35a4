package rest

import (
	"log/slog"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/auth"
	authPostgres "github.com/frahmantamala/expense-api/internal/auth/postgres"
	"github.com/frahmantamala/expense-api/internal/category"
	categoryPostgres "github.com/frahmantamala/expense-api/internal/category/postgres"
	"github.com/frahmantamala/expense-api/internal/expense"
	expensePostgres "github.com/frahmantamala/expense-api/internal/expense/postgres"
	"github.com/frahmantamala/expense-api/internal/observability"
	"github.com/frahmantamala/expense-api/internal/report"
	reportPostgres "github.com/frahmantamala/expense-api/internal/report/postgres"
	"github.com/frahmantamala/expense-api/internal/user"
	userPostgres "github.com/frahmantamala/expense-api/internal/user/postgres"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// BuildHandlers wires repositories, services and handlers on top of the
// shared database handles. prom may be nil.
func BuildHandlers(gdb *gorm.DB, sdb *sqlx.DB, security internal.SecurityConfig, prom *observability.Prom, lg *slog.Logger) (Handlers, error) {
	tokens, err := auth.NewJWTTokenGenerator(security.JWTSecret, security.JWTAlgorithm, security.AccessTokenTTL())
	if err != nil {
		return Handlers{}, err
	}

	authService := auth.NewService(authPostgres.NewRepository(gdb, prom), tokens, security.BCryptCost, lg)
	userService := user.NewService(userPostgres.NewUserRepository(gdb, prom))
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gdb, prom), lg)
	expenseService := expense.NewService(expensePostgres.NewExpenseRepository(gdb, prom), lg)
	reportService := report.NewService(reportPostgres.NewReportRepository(sdb, prom), lg)

	return Handlers{
		Auth:     auth.NewHandler(authService),
		User:     user.NewHandler(userService),
		Category: category.NewHandler(categoryService),
		Expense:  expense.NewHandler(expenseService),
		Report:   report.NewHandler(reportService),
	}, nil
}
