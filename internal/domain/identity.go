package domain

import "github.com/google/uuid"

// Caller roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Identity is the authenticated caller, threaded explicitly through every
// handler call instead of being read from ambient state.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Owns reports whether the caller may act on rows owned by ownerID.
func (i Identity) Owns(ownerID uuid.UUID) bool {
	return i.IsAdmin() || i.UserID == ownerID
}
