package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Name holds a user's first and last name.
type Name struct {
	First string `gorm:"not null" json:"first"`
	Last  string `gorm:"not null" json:"last"`
}

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID           uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         Name      `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	RoleID       uuid.UUID `gorm:"type:text;not null" json:"-"`
	Role         Role      `json:"role"`
	LoggedIn     bool      `gorm:"not null;default:false" json:"loggedIn"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeSave generates the ID and normalizes the email address.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(u.Email)
	return nil
}

// VerifyPassword checks a cleartext password against the stored hash.
// Handlers must use this instead of comparing password material directly.
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
