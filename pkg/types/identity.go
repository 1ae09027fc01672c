package types

// Role is the access level of an authenticated session.
type Role string

// Roles. RoleNone is the zero identity returned when no credential matches.
const (
	RoleNone     Role = ""
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Identity is the result of an authentication attempt: the fixed
// administrator, a customer looked up by email, or nobody.
type Identity struct {
	Role       Role
	CustomerID int64 // set only for RoleCustomer
	Name       string
	Email      string
}

// LoggedIn reports whether the identity represents a successful login.
func (i Identity) LoggedIn() bool {
	return i.Role != RoleNone
}

// IsAdmin reports whether the identity is the fixed administrator.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
