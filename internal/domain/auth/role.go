package auth

// Role is carried in the "role" claim of access tokens.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// CanDecideRequests reports whether the role may approve or reject requests.
func (r Role) CanDecideRequests() bool {
	return r == RoleAdmin || r == RoleHR
}
