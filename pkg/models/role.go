package models

// Role governs which operations the UI exposes. The server remains the
// authority for every sensitive operation; roles only gate the client side.
type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the recognized values.
// Unknown roles must be rejected, never silently accepted.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}
