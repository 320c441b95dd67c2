package entity

// Role represents an authorization role.
// There are exactly two: regular users act on their own resources,
// the admin role only provisions users.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a request-supplied role string to a Role,
// defaulting to RoleUser when empty.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}
