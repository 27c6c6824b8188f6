package domain

// Identity and authorization live in a separate service. This core only sees
// the authenticated actor from the JWT: an opaque uuid plus a role.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleApprover Role = "approver"
	RoleAdmin    Role = "admin"
)

type Actor struct {
	ID   string
	Role Role
}

// CanDecide reports whether the actor may approve or reject bookings.
func (a Actor) CanDecide() bool {
	return a.Role == RoleApprover || a.Role == RoleAdmin
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
