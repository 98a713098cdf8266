package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminRole reports whether role grants administrative access.
func AdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// AdminIdentity is the resolved administrator behind a session. It is only
// materialized for sessions whose admin record carries an admin role.
type AdminIdentity struct {
	ID          string
	Email       string
	DisplayName string
	Role        string
}

// Admin is a row in the admin table. Admins are provisioned by email before
// their login record exists, so IdentityID may lag behind until first login.
type Admin struct {
	ID         string
	IdentityID string
	Email      string
	Name       string
	Role       string
	CreatedAt  time.Time
	LastLogin  time.Time
}

// AuthUser is a credential record in the session-store boundary.
type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is a live entry in the session store: an opaque token bound to an
// identity id and email. Revoking the entry forcibly terminates the session.
type Session struct {
	ID         string
	IdentityID string
	Email      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}
