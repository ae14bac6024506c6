package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role titles form a closed enumeration. The access level is derived from the
// title and never stored independently of it.
const (
	RoleViewer = "viewer"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// DefaultRoleTitle is assigned when a caller omits a role.
const DefaultRoleTitle = RoleViewer

// AccessLevels maps each known role title to its rank.
var AccessLevels = map[string]int{
	RoleViewer: 0,
	RoleStaff:  1,
	RoleAdmin:  2,
}

// ValidRoleTitle reports whether title names one of the known roles.
func ValidRoleTitle(title string) bool {
	_, ok := AccessLevels[title]
	return ok
}

// Role represents an access role (viewer, staff, admin)
type Role struct {
	ID          uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Title       string    `gorm:"uniqueIndex;not null" json:"title"`
	AccessLevel int       `gorm:"not null" json:"accessLevel"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeSave keeps the access level consistent with the title.
func (r *Role) BeforeSave(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.AccessLevel = AccessLevels[r.Title]
	return nil
}
