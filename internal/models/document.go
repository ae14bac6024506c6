package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is an access-controlled piece of content. Role is the minimum role
// required to read it; the owner may always read, modify, and delete it.
type Document struct {
	ID           uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Title        string    `gorm:"uniqueIndex;not null" json:"title"`
	Content      string    `json:"content"`
	OwnerID      uuid.UUID `gorm:"type:text;not null" json:"ownerId"`
	RoleID       uuid.UUID `gorm:"type:text;not null" json:"-"`
	Role         Role      `json:"role"`
	DateCreated  time.Time `gorm:"autoCreateTime" json:"dateCreated"`
	LastModified time.Time `gorm:"autoUpdateTime" json:"lastModified"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
