package entity

import "github.com/google/uuid"

// Identity is the caller resolved once per request and passed explicitly
// into every usecase call.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsZero reports whether the identity is anonymous
func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}

// HasRole reports whether the identity carries any of the given roles
func (i Identity) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}
