package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubPool implements database.Pool for readiness tests
type stubPool struct {
	pingErr error
}

func (s *stubPool) Ping(ctx context.Context) error { return s.pingErr }
func (s *stubPool) Close()                         {}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	HandleHealthz()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadyz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	HandleReadyz(&stubPool{})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReadyzDatabaseDown(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	HandleReadyz(&stubPool{pingErr: errors.New("connection refused")})(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}
