// Package authz holds the pure authorization decisions. Every predicate
// depends only on the caller and the target entity, never on request state,
// and fails closed when role or ownership data is missing.
package authz

import (
	"fmt"
	"time"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// Role is the caller's role snapshot, taken from the token.
type Role struct {
	ID          string
	Title       string
	AccessLevel int
}

// Caller is the authenticated principal for a single request. It is populated
// by the request gate and passed explicitly to handlers.
type Caller struct {
	ID          string
	Role        Role
	LoggedIn    bool
	TokenExpiry time.Time
}

// canonicalID reduces the heterogeneous id shapes that reach the kernel
// (plain strings, uuid values, or full user records) to one string form.
func canonicalID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case *models.User:
		if id == nil {
			return ""
		}
		return id.ID.String()
	case models.User:
		return id.ID.String()
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

// IDEq compares two identifiers on their canonical string form.
func IDEq(a, b any) bool {
	ca, cb := canonicalID(a), canonicalID(b)
	return ca != "" && ca == cb
}

// IsOwner reports whether the caller created the document.
func IsOwner(caller Caller, doc *models.Document) bool {
	if doc == nil {
		return false
	}
	return IDEq(caller.ID, doc.OwnerID)
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(caller Caller) bool {
	return caller.Role.AccessLevel == models.AccessLevels[models.RoleAdmin]
}

// CanRead allows the owner always; otherwise the caller's access level must
// meet the document's. A document without a role is unreadable to non-owners.
func CanRead(caller Caller, doc *models.Document) bool {
	if IsOwner(caller, doc) {
		return true
	}
	if doc == nil || !models.ValidRoleTitle(doc.Role.Title) {
		return false
	}
	return caller.Role.AccessLevel >= doc.Role.AccessLevel
}

// CanModify uses the same policy as read.
func CanModify(caller Caller, doc *models.Document) bool {
	return CanRead(caller, doc)
}

// CanDelete allows the owner and any admin.
func CanDelete(caller Caller, doc *models.Document) bool {
	return IsOwner(caller, doc) || IsAdmin(caller)
}

// CanListUsers restricts user enumeration to admins.
func CanListUsers(caller Caller) bool {
	return IsAdmin(caller)
}

// CanGetStats restricts global counts to admins.
func CanGetStats(caller Caller) bool {
	return IsAdmin(caller)
}

// CanViewUserProfile allows a user to view their own profile, and admins to
// view anyone's.
func CanViewUserProfile(caller Caller, targetUserID any) bool {
	return IDEq(caller.ID, targetUserID) || IsAdmin(caller)
}

// CanModifyUserProfile uses the same policy as view.
func CanModifyUserProfile(caller Caller, targetUserID any) bool {
	return CanViewUserProfile(caller, targetUserID)
}

// CanDeleteUser uses the same policy as view.
func CanDeleteUser(caller Caller, targetUserID any) bool {
	return CanViewUserProfile(caller, targetUserID)
}
