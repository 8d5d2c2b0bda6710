package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["storage"].Status)
	assert.Equal(t, "healthy", health.Components["search"].Status)
	assert.Equal(t, "0 clients connected", health.Components["sse"].Message)
}

func TestHealthCheck_DegradedAfterWriteFailure(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.store.FailWrites(true)
	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title": "Kindred", "author": "Octavia E. Butler", "genre": "Science Fiction", "total_pages": 264,
	})
	// Persistence failures never reach the caller.
	assert.Equal(t, http.StatusCreated, resp.Code)

	health := decode[HealthResponse](t, ts.api.Get("/health"))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "degraded", health.Components["storage"].Status)
	assert.NotEmpty(t, health.Components["storage"].Message)
}

func TestHealthCheck_Unconfigured(t *testing.T) {
	s := NewServer(Deps{}, nil)

	out, err := s.handleHealthCheck(t.Context(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "degraded", out.Body.Status)
	assert.Len(t, out.Body.Components, 3)
}
