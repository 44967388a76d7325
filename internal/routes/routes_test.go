package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"resource-catalog-api/internal/config"
	"resource-catalog-api/internal/version"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, cleanup := SetupRoutes(config.Defaults())
	t.Cleanup(cleanup)
	return r
}

func TestHealth(t *testing.T) {
	r := setup(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestVersionGateGuardsAPI(t *testing.T) {
	r := setup(t)

	// Unsupported version is rejected before anything else runs.
	req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	req.Header.Set(version.Header, "9.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "supported_versions")

	// Supported but unauthenticated falls through to the auth layer.
	req = httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	req.Header.Set(version.Header, "2.0")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDefaultVersionIsDeprecated(t *testing.T) {
	r := setup(t)

	// No declared version: the default ("1.0") is the oldest supported and
	// responses carry the deprecation signal even on auth failures.
	req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "true", w.Header().Get("Deprecation"))
	require.NotEmpty(t, w.Header().Get("Sunset"))
}
