package domain

import (
	"slices"
	"time"
)

type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleStaff     Role = "STAFF"
	RoleProvider  Role = "PROVIDER"
)

var allRoles = []Role{RoleJobSeeker, RoleEmployer, RoleStaff, RoleProvider}

// ParseRole reports whether s names a known role. Callers that tolerate
// unknown entries (the token verifier) drop anything it rejects.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	if slices.Contains(allRoles, role) {
		return role, true
	}
	return "", false
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	Address      string    `json:"address"`
	Education    string    `json:"education"`
	Skills       []string  `json:"skills"`
	Veteran      bool      `json:"veteran"`
	Roles        []Role    `json:"roles"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// Principal is the identity resolved for one in-flight request. It is derived
// from a verified token, attached to the request context, and never persisted.
type Principal struct {
	UserID int64
	Roles  []Role
}

func (p *Principal) HasAnyRole(required ...Role) bool {
	for _, role := range p.Roles {
		if slices.Contains(required, role) {
			return true
		}
	}
	return false
}
