package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
)

// TestHealthCheck is a unit test for the healthCheck handler function
func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Denúncias API is running", response["message"])
}

func newMainTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Complaint{}, &models.Recurrence{}))
	config.SetDB(db)

	cfg := &config.Config{
		DatabaseURL:     "sqlite::memory:",
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
		GoEnv:           "test",
	}
	config.SetConfig(cfg)
	return setupRouter(cfg)
}

// TestRouterProtectsComplaintRoutes verifies the session gate sits in front
// of every record-management route.
func TestRouterProtectsComplaintRoutes(t *testing.T) {
	router := newMainTestRouter(t)

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/complaints"},
		{http.MethodPost, "/api/v1/complaints"},
		{http.MethodGet, "/api/v1/complaints/next-id"},
		{http.MethodGet, "/api/v1/complaints/1"},
		{http.MethodGet, "/api/v1/complaints/1/document"},
		{http.MethodGet, "/api/v1/complaints/export/csv"},
		{http.MethodGet, "/api/v1/users"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s must require a session", route.method, route.target)
	}
}

func TestRouterPublicEndpoints(t *testing.T) {
	router := newMainTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
