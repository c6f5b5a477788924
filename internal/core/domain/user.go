package domain

import "time"

// Role is the closed set of account roles. Using a dedicated type forces
// every authorization branch through the typed constants below.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a raw string (stored document, request body) into a
// Role, reporting whether it is one of the known values.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User models an account in the system. The password hash never leaves the
// server: it is excluded from every JSON response.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
