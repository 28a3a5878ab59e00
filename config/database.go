package config

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/urbfiscalizacao/denuncias-api/models"
	"github.com/urbfiscalizacao/denuncias-api/utils"
)

var DB *gorm.DB

// ConnectDatabase establishes a connection to the PostgreSQL database
func ConnectDatabase(databaseURL string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the database instance (used by tests)
func SetDB(db *gorm.DB) {
	DB = db
}

// MigrateDatabase creates or updates the schema and seeds the bootstrap
// admin account when no "admin" user exists yet.
func MigrateDatabase(db *gorm.DB, defaultAdminPassword string) error {
	if err := db.AutoMigrate(&models.User{}, &models.Complaint{}, &models.Recurrence{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	admin = models.User{
		Username:     "admin",
		PasswordHash: utils.HashPassword(defaultAdminPassword),
		FullName:     "Administrador",
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Seeded default admin account; change its password after install")
	return nil
}
