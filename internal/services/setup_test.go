package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Meeting{}, &models.Sale{}, &models.Quote{}, &models.Reminder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedScope(t *testing.T, db *gorm.DB, email string) gateway.Scope {
	t.Helper()
	u := models.User{Email: email, Password: "hash"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return gateway.NewScope(db, u.ID)
}
