package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/expense-api/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var _ = Describe("RequestID", func() {
	serve := func(header string) (*httptest.ResponseRecorder, string) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(TraceIDHeader, header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec, seen
	}

	It("echoes a well-formed incoming id", func() {
		rec, seen := serve("abc-123")
		Expect(rec.Header().Get(TraceIDHeader)).To(Equal("abc-123"))
		Expect(seen).To(Equal("abc-123"))
	})

	It("generates a uuid when missing", func() {
		rec, seen := serve("")
		Expect(rec.Header().Get(TraceIDHeader)).To(HaveLen(36))
		Expect(seen).To(Equal(rec.Header().Get(TraceIDHeader)))
	})

	DescribeTable("replaces ids that could pollute logs",
		func(header string) {
			rec, seen := serve(header)
			Expect(seen).NotTo(Equal(header))
			Expect(seen).To(HaveLen(36))
			Expect(rec.Header().Get(TraceIDHeader)).To(Equal(seen))
		},
		Entry("spaces", "abc 123"),
		Entry("quotes", `abc"123`),
		Entry("too long", strings.Repeat("a", 65)),
	)
})

var _ = Describe("RecoveryMiddleware", func() {
	It("turns a panic into a 500 envelope", func() {
		var buf bytes.Buffer
		lg := slog.New(slog.NewTextHandler(&buf, nil))

		h := RecoveryMiddleware(lg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["error"]["code"]).To(Equal("INTERNAL_ERROR"))
		Expect(buf.String()).To(ContainSubstring("panic recovered"))
	})

	It("passes through when nothing panics", func() {
		h := RecoveryMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Code).To(Equal(http.StatusNoContent))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("keeps the request body readable downstream", func() {
		var got string
		h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := new(bytes.Buffer)
			_, _ = b.ReadFrom(r.Body)
			got = b.String()
			w.WriteHeader(http.StatusCreated)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Food"}`)))

		Expect(got).To(Equal(`{"name":"Food"}`))
		Expect(rec.Code).To(Equal(http.StatusCreated))
	})

	It("reads only the logged prefix and streams the rest through", func() {
		payload := strings.Repeat("x", 3*maxLoggedBody)
		var got []byte
		h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = io.ReadAll(r.Body)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(payload)))

		Expect(got).To(HaveLen(len(payload)))
	})

	It("masks secrets in JSON bodies", func() {
		out := filterSensitiveBody([]byte(`{"email":"a@b.co","password":"hunter2","nested":{"access_token":"t"}}`))

		Expect(out).NotTo(ContainSubstring("hunter2"))
		Expect(out).To(ContainSubstring(`"password":"[FILTERED]"`))
		Expect(out).To(ContainSubstring(`"access_token":"[FILTERED]"`))
		Expect(out).To(ContainSubstring("a@b.co"))
	})

	It("drops form bodies carrying a password", func() {
		out := filterSensitiveBody([]byte("username=a%40b.co&password=hunter2"))
		Expect(out).To(Equal("[FILTERED - Contains sensitive data]"))
	})

	It("masks the authorization header", func() {
		headers := http.Header{}
		headers.Set("Authorization", "Bearer secret")
		headers.Set("Accept", "application/json")

		filtered := filterSensitiveHeaders(headers)
		Expect(filtered["Authorization"]).To(Equal("[FILTERED]"))
		Expect(filtered["Accept"]).To(Equal("application/json"))
	})
})

var _ = Describe("MaxBodyBytes", func() {
	read := func(limit int64, body string) error {
		var readErr error
		h := MaxBodyBytes(limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return readErr
	}

	It("fails reads past the cap", func() {
		var tooLarge *http.MaxBytesError
		Expect(errors.As(read(8, "0123456789"), &tooLarge)).To(BeTrue())
	})

	It("allows bodies within the cap", func() {
		Expect(read(16, "0123456789")).To(Succeed())
	})

	It("leaves bodies alone when the cap is zero", func() {
		Expect(read(0, strings.Repeat("x", 1024))).To(Succeed())
	})
})

var _ = Describe("Tracing", func() {
	var recorder *tracetest.SpanRecorder

	BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		previous := otel.GetTracerProvider()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
		DeferCleanup(func() { otel.SetTracerProvider(previous) })
	})

	It("names the span after the chi route", func() {
		r := chi.NewRouter()
		r.Use(Tracing("expense-api"))
		r.Get("/expenses/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/expenses/42", nil))

		spans := recorder.Ended()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Name()).To(Equal("GET /expenses/{id}"))
		Expect(spans[0].Status().Code).To(Equal(codes.Error))
	})

	It("tags the span with the request id", func() {
		r := chi.NewRouter()
		r.Use(RequestID)
		r.Use(Tracing("expense-api"))
		r.Get("/health", func(http.ResponseWriter, *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(TraceIDHeader, "req-7")
		r.ServeHTTP(httptest.NewRecorder(), req)

		spans := recorder.Ended()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Attributes()).To(ContainElement(attribute.String("http.request.id", "req-7")))
	})
})
