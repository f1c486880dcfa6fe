package models

import "time"

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// ValidStatus reports whether s is one of the recognized task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

type Task struct {
	ID          string  `gorm:"primaryKey;size:36"`
	UserID      string  `gorm:"size:36;not null;index"`
	Title       string  `gorm:"size:100;not null"`
	Description *string `gorm:"size:500"`
	Status      string  `gorm:"size:20;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
