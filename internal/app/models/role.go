package models

// Role is the closed set of account roles known to the system.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Table resolves the account table backing the role. Every table name the
// application queries by role goes through this closed lookup; role strings
// are never interpolated into SQL.
func (r Role) Table() string {
	switch r {
	case RoleAdmin:
		return "admins"
	case RoleTeacher:
		return "teachers"
	case RoleStudent:
		return "students"
	}
	return ""
}

// ImportRole is the subset of roles that can appear in a CSV batch import.
func (r Role) ImportRole() bool {
	return r == RoleTeacher || r == RoleStudent
}
