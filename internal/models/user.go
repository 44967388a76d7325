package models

import (
	"gorm.io/gorm"
)

// User represents an account the token collaborator authenticates against.
// Passwords are stored as bcrypt hashes, never plaintext.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
