package session

// Role is the closed set of portal roles. The zero value means no role
// (unauthenticated or unknown).
type Role string

const (
	RoleNone       Role = ""
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleCandidate  Role = "candidate"
	RoleStudent    Role = "student"
)

// RoleFromBackend maps the backend's role strings to the portal's Role type.
// Unknown values map to RoleNone rather than silently matching nothing.
func RoleFromBackend(role string) Role {
	switch role {
	case "SUPERADMIN":
		return RoleSuperAdmin
	case "ADMIN":
		return RoleAdmin
	case "CANDIDAT":
		return RoleCandidate
	case "ETUDIANT":
		return RoleStudent
	default:
		return RoleNone
	}
}

// HomeRoute returns the default landing route for the role. Users that reach
// a page their role does not permit are sent here instead.
func (r Role) HomeRoute() string {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return "/admin"
	case RoleCandidate, RoleStudent:
		return "/student"
	default:
		return "/"
	}
}

// In reports whether the role is a member of the given allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
