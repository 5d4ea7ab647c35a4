package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/frahmantamala/expense-api/internal/core/common/dberr"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestDBErr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DB Error Suite")
}

var _ = Describe("IsUniqueViolation", func() {
	DescribeTable("classifies errors",
		func(err error, expected bool) {
			Expect(dberr.IsUniqueViolation(err)).To(Equal(expected))
		},
		Entry("nil", nil, false),
		Entry("gorm duplicated key", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true),
		Entry("postgres 23505", &pgconn.PgError{Code: "23505"}, true),
		Entry("postgres foreign key", &pgconn.PgError{Code: "23503"}, false),
		Entry("sqlite message", errors.New("UNIQUE constraint failed: users.email"), true),
		Entry("anything else", errors.New("connection refused"), false),
	)

	DescribeTable("classifies foreign key violations",
		func(err error, expected bool) {
			Expect(dberr.IsForeignKeyViolation(err)).To(Equal(expected))
		},
		Entry("nil", nil, false),
		Entry("gorm foreign key", fmt.Errorf("create: %w", gorm.ErrForeignKeyViolated), true),
		Entry("postgres 23503", &pgconn.PgError{Code: "23503"}, true),
		Entry("postgres unique", &pgconn.PgError{Code: "23505"}, false),
		Entry("sqlite message", errors.New("FOREIGN KEY constraint failed"), true),
		Entry("anything else", errors.New("connection refused"), false),
	)

	It("recognizes a missing row", func() {
		Expect(dberr.IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound))).To(BeTrue())
		Expect(dberr.IsNotFound(errors.New("boom"))).To(BeFalse())
	})
})
