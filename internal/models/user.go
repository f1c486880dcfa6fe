package models

import "time"

type User struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Email     string  `gorm:"size:255;not null;uniqueIndex"`
	Name      *string `gorm:"size:255"`
	Password  string  `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
