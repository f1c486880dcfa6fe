package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ndanylov/taskdeck/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))
	return db
}

func newTestAuthService(t *testing.T, db *gorm.DB, ttl time.Duration) AuthService {
	t.Helper()
	return NewAuthService(zerolog.Nop(), db, "taskdeck-test", []byte("test-signing-key"), ttl)
}

func newTestTaskService(t *testing.T, db *gorm.DB) TaskService {
	t.Helper()
	return NewTaskService(zerolog.Nop(), db)
}

func insertTestUser(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()

	now := time.Now()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  "irrelevant",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func strPtr(s string) *string {
	return &s
}
