package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"portal/database"
	"portal/models"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB swaps the global connection for an in-memory sqlite database
// migrated with the full schema. Each test gets its own database.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Attempt{},
		&models.Application{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
	database.RDB = nil
}

func createTestUser(t *testing.T, status string, lastAttempt *time.Time) models.User {
	t.Helper()

	user := models.User{
		DiscordID:     fmt.Sprintf("discord-%d", atomic.AddInt64(&testDBCounter, 1)),
		Username:      "tester",
		Status:        status,
		LastAttemptAt: lastAttempt,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func seedTestBank(t *testing.T, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		question := models.Question{
			Position:      i + 1,
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       datatypes.NewJSONSlice([]string{"a", "b", "c", "d"}),
			CorrectOption: i % 4,
		}
		if err := database.DB.Create(&question).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}
}
