package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/bff/pages/{page}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/bff/pages/{page}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bff/pages/index", nil))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bff/pages/profile", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/bff/pages/{page}", "418"))
	assert.Equal(t, before+2, after)
}

func TestMiddleware_UnmatchedWithoutRouter(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "200")))
}

func TestRecordPageOutcome(t *testing.T) {
	c := pageOutcomesTotal.WithLabelValues("cart.submit", "failed")
	before := testutil.ToFloat64(c)

	RecordPageOutcome("cart.submit", "failed")

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)
	assert.Equal(t, http.StatusOK, rw.statusCode, "status defaults to 200 when never written")

	rw.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rw.statusCode)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
