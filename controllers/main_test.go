package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/middleware"
	"github.com/urbfiscalizacao/denuncias-api/models"
)

// setupTestDB opens a fresh in-memory database with the full schema and
// installs it as the shared instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Complaint{}, &models.Recurrence{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:           "test",
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
	})
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// sessionFor simulates middleware.RequireSession by placing the given user
// directly in the request context.
func sessionFor(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, user)
		c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	return response
}

func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}

// seedComplaint inserts a complaint with sensible defaults, overridable via
// the mutate callback.
func seedComplaint(t *testing.T, db *gorm.DB, mutate func(*models.Complaint)) models.Complaint {
	t.Helper()

	complaint := models.Complaint{
		ExternalID:   "",
		Origin:       "Telefone",
		Category:     "Urbana",
		Street:       "Rua das Flores",
		HouseNumber:  "120",
		Neighborhood: "CENTENÁRIO",
		Zone:         "NORTE",
		Latitude:     "-8.2839",
		Longitude:    "-35.9699",
		Description:  "Lixo acumulado",
		ReceivedBy:   models.Inspectors[0],
		Status:       models.StatusPending,
	}
	if mutate != nil {
		mutate(&complaint)
	}
	if complaint.ExternalID == "" {
		var maxID int64
		db.Model(&models.Complaint{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID)
		complaint.ExternalID = formatExternalID(maxID + 1)
	}
	if err := db.Create(&complaint).Error; err != nil {
		t.Fatalf("Failed to seed complaint: %v", err)
	}
	return complaint
}

func formatExternalID(n int64) string {
	return fmt.Sprintf("%04d/%d", n, time.Now().Year())
}
