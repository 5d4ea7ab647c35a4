// Package testutil opens throwaway SQLite databases shaped like the
// production schema for repository and router tests.
package testutil

import (
	"fmt"

	categoryDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/expense"
	userDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/user"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteDriver = "sqlite3"

const expensesBasicView = `
CREATE VIEW IF NOT EXISTS v_expenses_basic AS
SELECT e.id, e.user_id, c.id AS category_id, c.name AS category_name, e.amount, e.currency,
       e.description, e.date, e.paid_at, e.payment_method, e.status
FROM expenses e
LEFT JOIN categories c ON c.id = e.category_id AND c.user_id = e.user_id`

type DB struct {
	Gorm *gorm.DB
	SQLX *sqlx.DB
}

// NewSQLite returns an in-memory database. Both handles share one
// connection so they see the same data.
func NewSQLite() (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&userDatamodel.User{}, &categoryDatamodel.Category{}, &expenseDatamodel.Expense{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	if err := gdb.Exec(expensesBasicView).Error; err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}

	return &DB{Gorm: gdb, SQLX: sqlx.NewDb(sqlDB, sqliteDriver)}, nil
}

func (d *DB) Close() error {
	return d.SQLX.Close()
}

// MustNewSQLite panics on setup failure. Meant for BeforeEach blocks.
func MustNewSQLite() *DB {
	db, err := NewSQLite()
	if err != nil {
		panic(err)
	}
	return db
}
