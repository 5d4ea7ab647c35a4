package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/expense-api/internal/auth"
	categoryDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/expense"
	userDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/user"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password"
	demoName     = "Demo User"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo account, categories and expenses for development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		gdb, err := initGorm(db.DB)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return seed(ctx, gdb, cfg.Security.BCryptCost, clearData)
	},
}

type seedExpense struct {
	category string
	amount   string
	desc     string
	daysAgo  int
	method   string
	status   string
}

var (
	seedCategories = []struct {
		Name  string
		Color string
	}{
		{"Groceries", "#4CAF50"},
		{"Transport", "#2196F3"},
		{"Housing", "#9C27B0"},
		{"Leisure", "#FF9800"},
	}

	seedExpenses = []seedExpense{
		{"Groceries", "125.50", "Supermarket", 3, "CARD", "PAID"},
		{"Groceries", "48.90", "Bakery", 10, "PIX", "PAID"},
		{"Transport", "32.00", "Ride to office", 1, "CARD", "PAID"},
		{"Housing", "1800.00", "Rent", 15, "TRANSFER", "PLANNED"},
		{"Leisure", "90.00", "Cinema", 40, "CASH", "CANCELLED"},
		{"", "15.00", "Coffee", 2, "CASH", "PAID"},
	}
)

// seed is idempotent: the demo user and its categories are reused when they
// already exist, and expenses are only added to an empty account.
func seed(ctx context.Context, gdb *gorm.DB, bcryptCost int, clear bool) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ensureDemoUser(tx, bcryptCost)
		if err != nil {
			return err
		}

		if clear {
			if err := tx.Where("user_id = ?", user.ID).Delete(&expenseDatamodel.Expense{}).Error; err != nil {
				return fmt.Errorf("clear expenses: %w", err)
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&categoryDatamodel.Category{}).Error; err != nil {
				return fmt.Errorf("clear categories: %w", err)
			}
		}

		categoryIDs := make(map[string]int64, len(seedCategories))
		for _, c := range seedCategories {
			color := c.Color
			row := categoryDatamodel.Category{UserID: user.ID, Name: c.Name, Color: &color}
			if err := tx.Where("user_id = ? AND name = ?", user.ID, c.Name).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
			categoryIDs[c.Name] = row.ID
		}

		var count int64
		if err := tx.Model(&expenseDatamodel.Expense{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			fmt.Println("demo expenses already present; skipping")
			return nil
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		for _, e := range seedExpenses {
			desc := e.desc
			row := expenseDatamodel.Expense{
				UserID:        user.ID,
				Amount:        decimal.RequireFromString(e.amount),
				Currency:      "BRL",
				Description:   &desc,
				Date:          today.AddDate(0, 0, -e.daysAgo),
				PaymentMethod: e.method,
				Status:        e.status,
			}
			if id, ok := categoryIDs[e.category]; ok {
				row.CategoryID = &id
			}
			if e.status == "PAID" {
				paidAt := row.Date.Add(12 * time.Hour)
				row.PaidAt = &paidAt
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed expense %s: %w", e.desc, err)
			}
		}

		fmt.Printf("Seeded demo account %s / %s\n", demoEmail, demoPassword)
		return nil
	})
}

func ensureDemoUser(tx *gorm.DB, bcryptCost int) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := tx.Where("email = ?", demoEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(demoPassword, bcryptCost)
	if err != nil {
		return nil, err
	}
	name := demoName
	user = userDatamodel.User{
		Email:        demoEmail,
		PasswordHash: hash,
		FullName:     &name,
		IsActive:     true,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("seed demo user: %w", err)
	}
	return &user, nil
}
