package handlers_test

import (
	"TokenGate/internal/config"
	"TokenGate/internal/handlers"
	"TokenGate/internal/repo"
	"TokenGate/internal/service"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) MarkValidated(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepo) IsValidated(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

var _ repo.TokenRepository = (*mockTokenRepo)(nil)

// --- Helpers ---
func newTestRouter(t *testing.T, r repo.TokenRepository, cfg *config.Config) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	h := handlers.NewHandler(service.NewTokenService(r), zap.NewNop().Sugar(), cfg, prometheus.NewRegistry())
	return h.Router
}

func doGet(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, handlers.TokenResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var body handlers.TokenResponse
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

// --- Tests ---
func TestToken_ValidateThenStatus(t *testing.T) {
	router := newTestRouter(t, repo.NewMemoryTokenRepository(), nil)

	rr, body := doGet(t, router, "/auth/abc123")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"validated","message":"Token has been validated!"}`, rr.Body.String())
	assert.Equal(t, "validated", body.Status)

	rr, _ = doGet(t, router, "/auth/abc123/status")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"validated","message":"Token is validated."}`, rr.Body.String())
}

func TestToken_StatusNeverSeenIsPending(t *testing.T) {
	router := newTestRouter(t, repo.NewMemoryTokenRepository(), nil)

	rr, _ := doGet(t, router, "/auth/neverseen/status")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"pending","message":"Token is not validated yet."}`, rr.Body.String())
}

func TestToken_Properties(t *testing.T) {
	router := newTestRouter(t, repo.NewMemoryTokenRepository(), nil)

	t.Run("repeated validate is idempotent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			rr, body := doGet(t, router, "/auth/again")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "Token has been validated!", body.Message)
		}
		for i := 0; i < 3; i++ {
			rr, body := doGet(t, router, "/auth/again/status")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "validated", body.Status)
		}
	})

	t.Run("other tokens stay pending", func(t *testing.T) {
		rr, _ := doGet(t, router, "/auth/t1")
		assert.Equal(t, http.StatusOK, rr.Code)

		rr, body := doGet(t, router, "/auth/t2/status")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "pending", body.Status)
	})

	t.Run("status has no side effects", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			rr, _ := doGet(t, router, "/auth/quiet/status")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		}
	})
}

func TestToken_PathDecoding(t *testing.T) {
	r := repo.NewMemoryTokenRepository()
	router := newTestRouter(t, r, nil)

	rr, _ := doGet(t, router, "/auth/a%2Fb")
	assert.Equal(t, http.StatusOK, rr.Code)
	ok, _ := r.IsValidated(context.Background(), "a/b")
	assert.True(t, ok, "percent-encoded slash must be decoded")

	rr, _ = doGet(t, router, "/auth/hello%20world")
	assert.Equal(t, http.StatusOK, rr.Code)
	ok, _ = r.IsValidated(context.Background(), "hello world")
	assert.True(t, ok)

	rr, _ = doGet(t, router, "/auth/a%2Fb/status")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestToken_UnknownRoutes(t *testing.T) {
	router := newTestRouter(t, repo.NewMemoryTokenRepository(), nil)

	for _, path := range []string{"/", "/auth/a/b/c", "/auth/a/statuses", "/metrics"} {
		rr, _ := doGet(t, router, path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestToken_HeadUsesGetRoutes(t *testing.T) {
	r := repo.NewMemoryTokenRepository()
	router := newTestRouter(t, r, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/auth/neverseen/status", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/auth/viahead", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/auth/viahead/status", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestToken_RepoFailure(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		m := new(mockTokenRepo)
		router := newTestRouter(t, m, nil)
		m.On("MarkValidated", mock.Anything, "abc").Return(errors.New("down")).Once()
		rr, _ := doGet(t, router, "/auth/abc")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("status", func(t *testing.T) {
		m := new(mockTokenRepo)
		router := newTestRouter(t, m, nil)
		m.On("IsValidated", mock.Anything, "abc").Return(false, errors.New("down")).Once()
		rr, _ := doGet(t, router, "/auth/abc/status")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		m.AssertExpectations(t)
	})
}

func TestToken_RequestIDHeader(t *testing.T) {
	router := newTestRouter(t, repo.NewMemoryTokenRepository(), nil)

	rr, _ := doGet(t, router, "/auth/x/status")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, repo.NewMemoryTokenRepository(), &config.Config{EnableMetrics: true})

	doGet(t, router, "/auth/m1")
	doGet(t, router, "/auth/m1/status")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/auth/{token}",status="200"} 1`)
	assert.Contains(t, string(body), `route="/auth/{token}/status"`)
	assert.NotContains(t, string(body), "m1")
}
