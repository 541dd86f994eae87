package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type fakeMetrics struct {
	observed []observation
}

func (f *fakeMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/availability/{availabilityId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/availability/123", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{method: http.MethodGet, path: "/availability/{availabilityId}", status: http.StatusNotFound}, m.observed[0])
}

func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, http.StatusOK, m.observed[0].status)
}
