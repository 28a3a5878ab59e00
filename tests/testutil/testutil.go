package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
	"github.com/urbfiscalizacao/denuncias-api/utils"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". It guards
// suites that would otherwise run against a developer database.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" && env != "" {
		t.Fatalf("Tests must run with GO_ENV=test (current: %q)", env)
	}
}

// NewTestDatabase opens a fresh in-memory database with the full schema,
// installs it as the shared instance and returns it.
func NewTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Complaint{}, &models.Recurrence{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// NewTestConfig installs a throwaway configuration suitable for handler
// tests and returns it.
func NewTestConfig() *config.Config {
	cfg := &config.Config{
		DatabaseURL:     "sqlite::memory:",
		GoEnv:           "test",
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
	}
	config.SetConfig(cfg)
	return cfg
}

// SeedAdmin creates the bootstrap admin account with the given password.
func SeedAdmin(t *testing.T, db *gorm.DB, password string) models.User {
	t.Helper()

	admin := models.User{
		Username:     "admin",
		PasswordHash: utils.HashPassword(password),
		FullName:     "Administrador",
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}
	return admin
}
