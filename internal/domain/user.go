package domain

import "time"

// Roles recognised by the platform.
const (
	RoleMember      = "member"
	RoleSchoolAdmin = "school_admin"
	RoleSuperAdmin  = "super_admin"
)

// User represents a registered account: student/alumni member, school admin
// or the platform super admin.
type User struct {
	ID           string    `json:"id"`
	SchoolID     *string   `json:"schoolId,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may mutate catalog/feed entries for the
// given school. Super admins may mutate anything, including global rows
// (schoolID == nil).
func (u User) IsAdmin(schoolID *string) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	if u.Role != RoleSchoolAdmin {
		return false
	}
	if schoolID == nil || u.SchoolID == nil {
		return false
	}
	return *u.SchoolID == *schoolID
}
