package workflow

import "strings"

// Role identifies the party acting on an assignment. Roles arrive from the
// caller as plain strings; this package only checks membership against the
// reopen allow-lists, never identity or data scope.
type Role string

const (
	RoleEmployee  Role = "Employee"
	RoleManager   Role = "Manager"
	RoleTeamLead  Role = "TeamLead"
	RoleHRManager Role = "HRManager"
	RoleAdmin     Role = "Admin"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Equals compares roles case-insensitively
func (r Role) Equals(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}
