package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/category"
	categoryPostgres "github.com/frahmantamala/expense-api/internal/category/postgres"
	"github.com/frahmantamala/expense-api/internal/testutil"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *testutil.DB
		handler *category.Handler
		owner   *internal.AuthUser
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db = testutil.MustNewSQLite()
		DeferCleanup(db.Close)

		service := category.NewService(categoryPostgres.NewCategoryRepository(db.Gorm, nil), slogger)
		handler = category.NewHandler(service)
		owner = &internal.AuthUser{ID: 1, Email: "ana@example.com"}

		for _, name := range []string{"Transport", "Food"} {
			_, err := service.Create(context.Background(), owner.ID, category.CreateCategoryDTO{Name: name})
			Expect(err).NotTo(HaveOccurred())
		}
	})

	asOwner := func(req *http.Request) *http.Request {
		return req.WithContext(internal.ContextWithUser(req.Context(), owner))
	}

	withID := func(req *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	It("should handle GET /categories request successfully", func() {
		req := asOwner(httptest.NewRequest(http.MethodGet, "/categories", nil))
		w := httptest.NewRecorder()

		handler.ListCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response []category.CategoryResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response).To(HaveLen(2))
		Expect(response[0].Name).To(Equal("Food"))
		Expect(response[1].Name).To(Equal("Transport"))
	})

	It("should create a category with a color", func() {
		req := asOwner(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Health","color":"#F00"}`)))
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var response category.CategoryResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.ID).To(BeNumerically(">", 0))
		Expect(*response.Color).To(Equal("#F00"))
	})

	It("should answer a duplicate name with 400", func() {
		req := asOwner(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Food"}`)))
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("CATEGORY_NAME_CONFLICT"))
	})

	It("should return 404 for a category owned by someone else", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories/1", nil)
		req = req.WithContext(internal.ContextWithUser(req.Context(), &internal.AuthUser{ID: 2}))
		w := httptest.NewRecorder()

		handler.GetCategory(w, withID(req, "1"))

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should reject requests without a principal", func() {
		w := httptest.NewRecorder()

		handler.ListCategories(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
	})

	It("should delete and then report not found", func() {
		w := httptest.NewRecorder()
		handler.DeleteCategory(w, withID(asOwner(httptest.NewRequest(http.MethodDelete, "/categories/1", nil)), "1"))
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = httptest.NewRecorder()
		handler.DeleteCategory(w, withID(asOwner(httptest.NewRequest(http.MethodDelete, "/categories/1", nil)), "1"))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
