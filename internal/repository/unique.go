package repository

import (
	"strings"
)

// UniqueViolationColumn inspects a driver error for a unique constraint
// violation and returns the offending column name, or "" when the error is
// something else. Two simultaneous inserts can both pass a pre-insert
// existence check and collide at the constraint; callers use this to surface
// the collision as a duplicate rather than a generic failure.
func UniqueViolationColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	// sqlite: "UNIQUE constraint failed: users.username"
	// mysql:  "Error 1062 ... Duplicate entry 'x' for key 'users.idx_users_username'"
	if !strings.Contains(msg, "UNIQUE constraint failed") && !strings.Contains(msg, "Duplicate entry") {
		return ""
	}
	for _, column := range []string{"username", "email", "slug"} {
		if strings.Contains(msg, column) {
			return column
		}
	}
	return ""
}
