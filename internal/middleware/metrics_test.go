package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWithMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(WithMetrics(m))
	r.Get("/auth/{token}/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for _, tok := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/"+tok+"/status", nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/auth/{token}/status", "400")))
	// одна серия на маршрут, токены в лейблы не попадают
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}

func TestWithMetrics_Unmatched(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := WithMetrics(m)(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
