package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("renders the error envelope", func() {
		status, body := ErrExpenseNotFound.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusNotFound))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(MatchJSON(`{"error":{"type":"NOT_FOUND","code":"EXPENSE_NOT_FOUND","message":"Expense not found"}}`))
	})

	It("includes field details for validation failures", func() {
		appErr := NewValidationFieldError("amount", "amount is required", ErrCodeValidationFailed)
		Expect(appErr.StatusCode).To(Equal(http.StatusUnprocessableEntity))

		raw, err := json.Marshal(appErr)
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(MatchJSON(`{
			"type": "VALIDATION_ERROR",
			"code": "VALIDATION_FAILED",
			"message": "Validation failed",
			"details": {"errors": [{"field": "amount", "message": "amount is required", "code": "VALIDATION_FAILED"}]}
		}`))
		Expect(appErr.Error()).To(Equal("amount is required"))
	})

	It("sends conflicts as 400", func() {
		Expect(ErrCategoryNameConflict.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(ErrEmailAlreadyRegistered.Type).To(Equal(ErrorTypeConflict))
	})

	It("never mutates shared sentinels", func() {
		cause := errors.New("driver closed")
		wrapped := ErrInvalidRequestBody.WithCause(cause)

		Expect(ErrInvalidRequestBody.Cause).To(BeNil())
		Expect(errors.Is(wrapped, cause)).To(BeTrue())
		Expect(errors.Is(wrapped, ErrInvalidRequestBody)).To(BeTrue())

		detailed := ErrInvalidRequestBody.WithDetails("x")
		Expect(ErrInvalidRequestBody.Details).To(BeNil())
		Expect(detailed.Details).To(Equal("x"))
	})

	It("is found through wrapping", func() {
		appErr, ok := IsAppError(fmt.Errorf("handler: %w", ErrCategoryNotFound))
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(ErrCodeCategoryNotFound))

		_, ok = IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())
	})

	It("joins several validation messages", func() {
		appErr := NewValidationErrors([]ValidationError{
			{Field: "a", Message: "a is bad"},
			{Field: "b", Message: "b is bad"},
		})
		Expect(appErr.GetDetailedMessage()).To(Equal("a is bad; b is bad"))
	})
})

var _ = Describe("Context user", func() {
	It("round-trips through the context", func() {
		ctx := ContextWithUser(context.Background(), &AuthUser{ID: 9, Email: "a@b.co"})

		user, ok := UserFromContext(ctx)
		Expect(ok).To(BeTrue())
		Expect(user.ID).To(Equal(int64(9)))

		_, ok = UserFromContext(context.Background())
		Expect(ok).To(BeFalse())
	})
})
