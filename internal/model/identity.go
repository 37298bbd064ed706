package model

// Role constants carried in the session token.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Identity is the authenticated caller. It is never persisted — it is
// recomputed at every login from the static roster.
type Identity struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// IsAdmin reports whether the identity is the administrator.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
