package identity

import "github.com/google/uuid"

// Principal identifies the caller of an operation. A zero Principal is
// anonymous. It is resolved once per request and passed explicitly into
// services.
type Principal struct {
	UserID        uuid.UUID
	Role          Role
	Authenticated bool
}

// Anonymous returns the unauthenticated principal
func Anonymous() Principal {
	return Principal{}
}

// NewPrincipal builds a principal from a resolved user
func NewPrincipal(user *User) Principal {
	return Principal{
		UserID:        user.ID,
		Role:          user.Role,
		Authenticated: true,
	}
}

// IsAdmin reports whether the caller has the admin role
func (p Principal) IsAdmin() bool {
	return p.Authenticated && p.Role == RoleAdmin
}

// CanAccess reports whether the caller owns the resource or is an admin
func (p Principal) CanAccess(ownerID uuid.UUID) bool {
	if !p.Authenticated {
		return false
	}
	return p.IsAdmin() || p.UserID == ownerID
}
