package expense_test

import (
	"net/url"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseListFilter", func() {
	parse := func(raw string) (expense.ListFilter, *internal.AppError) {
		q, err := url.ParseQuery(raw)
		Expect(err).NotTo(HaveOccurred())
		return expense.ParseListFilter(q)
	}

	It("defaults to the first page of twenty", func() {
		filter, err := parse("")

		Expect(err).To(BeNil())
		Expect(filter.Page).To(Equal(1))
		Expect(filter.Size).To(Equal(20))
		Expect(filter.Offset()).To(Equal(0))
		Expect(filter.Start).To(BeNil())
		Expect(filter.CategoryID).To(BeNil())
	})

	It("reads every filter", func() {
		filter, err := parse("start=2025-01-01&end=2025-01-31&category_id=4&status=PAID&min=10&max=99.90&page=3&size=50")

		Expect(err).To(BeNil())
		Expect(filter.Start.Format("2006-01-02")).To(Equal("2025-01-01"))
		Expect(filter.End.Format("2006-01-02")).To(Equal("2025-01-31"))
		Expect(*filter.CategoryID).To(Equal(int64(4)))
		Expect(*filter.Status).To(Equal(expense.StatusPaid))
		Expect(filter.MinAmount.String()).To(Equal("10"))
		Expect(filter.MaxAmount.String()).To(Equal("99.9"))
		Expect(filter.Offset()).To(Equal(100))
	})

	It("treats category_id=0 as no filter", func() {
		filter, err := parse("category_id=0")

		Expect(err).To(BeNil())
		Expect(filter.CategoryID).To(BeNil())
	})

	It("accepts a single-day range", func() {
		_, err := parse("start=2025-01-01&end=2025-01-01")
		Expect(err).To(BeNil())
	})

	DescribeTable("rejects bad parameters",
		func(raw string, field string, code internal.ErrorCode) {
			_, err := parse(raw)

			Expect(err).NotTo(BeNil())
			Expect(err.StatusCode).To(Equal(422))
			Expect(err.Details.(internal.ValidationErrors).Errors).To(ContainElement(SatisfyAll(
				HaveField("Field", field),
				HaveField("Code", string(code)),
			)))
		},
		Entry("page zero", "page=0", "page", internal.ErrCodeInvalidPagination),
		Entry("size too large", "size=201", "size", internal.ErrCodeInvalidPagination),
		Entry("size zero", "size=0", "size", internal.ErrCodeInvalidPagination),
		Entry("unknown status", "status=DONE", "status", internal.ErrCodeInvalidStatus),
		Entry("bad date", "start=yesterday", "start", internal.ErrCodeInvalidDate),
		Entry("inverted range", "start=2025-02-01&end=2025-01-01", "start", internal.ErrCodeInvalidDateRange),
		Entry("bad amount", "min=ten", "min", internal.ErrCodeInvalidAmount),
		Entry("three decimal places", "min=1.005", "min", internal.ErrCodeInvalidAmount),
		Entry("out of range bound", "max=10000000000", "max", internal.ErrCodeInvalidAmount),
	)
})
