package auth

import "strings"

// Role is the authorization level derived from a verified email address.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	// RoleGuest is the least-privilege default for unknown or absent emails.
	RoleGuest Role = "guest"
)

// RoleResolver maps email addresses onto roles via static allow-lists.
// Resolution is total and deterministic; it never fails.
type RoleResolver struct {
	admins map[string]struct{}
	staff  map[string]struct{}
}

// NewRoleResolver builds a resolver from the configured allow-lists.
// Entries are compared case-insensitively.
func NewRoleResolver(adminEmails, staffEmails []string) *RoleResolver {
	return &RoleResolver{
		admins: toSet(adminEmails),
		staff:  toSet(staffEmails),
	}
}

// Resolve returns the role for an email address. Checks run in fixed order:
// empty email is a guest, then the admin list wins over the staff list.
func (r *RoleResolver) Resolve(email string) Role {
	if email == "" {
		return RoleGuest
	}
	lower := strings.ToLower(email)
	if _, ok := r.admins[lower]; ok {
		return RoleAdmin
	}
	if _, ok := r.staff[lower]; ok {
		return RoleStaff
	}
	return RoleGuest
}

func toSet(emails []string) map[string]struct{} {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(e)] = struct{}{}
	}
	return set
}
