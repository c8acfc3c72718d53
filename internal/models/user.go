package models

import "time"

// User represents an account of the marketplace.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(64);not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(120);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(120);not null"`
	Role         Role      `json:"role" gorm:"type:varchar(32);not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(30)"`
	Building     string    `json:"building" gorm:"type:varchar(10)"`
	Floor        string    `json:"floor" gorm:"type:varchar(10)"`
	Apartment    string    `json:"apartment" gorm:"type:varchar(10)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
