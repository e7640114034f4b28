package user

// Role is the account's position in the permission model. It rides in the JWT
// claims and never changes mid-session; a role change requires a new login.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsReviewer reports whether the role may decide absence justifications.
func (r Role) IsReviewer() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleManager
}
