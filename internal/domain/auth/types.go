// Package auth contains domain-level types for admin authentication and
// sessions. It is pure and free of transport/adapter concerns.
package auth

import "time"

// Role represents an admin's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	// RoleSuperAdmin passes every path-level role check regardless of the
	// permission table.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return true
	default:
		return false
	}
}

// SessionCookieName is the name of the signed admin session cookie.
const SessionCookieName = "admin_session"

// Claim is the signed session payload carried by the admin cookie.
// Role, Email, and Name are display copies of the account record as of the
// last (re)signing; they may go stale until the whoami endpoint reconciles
// them against the account store.
type Claim struct {
	AdminUserID string `json:"adminUserId"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	// IssuedAt is the Unix timestamp (seconds) of the last (re)signing.
	IssuedAt int64 `json:"issuedAt"`
}

// Age returns how long ago the claim was last signed.
func (c Claim) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(c.IssuedAt, 0))
}

// IsSuperAdmin reports whether the claim carries the super-admin role.
func (c Claim) IsSuperAdmin() bool { return c.Role == RoleSuperAdmin }
