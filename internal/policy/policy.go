// Package policy holds the authorization rule set consulted by the
// services. Every function is pure: the caller loads the target entity
// and passes the relevant fields in.
package policy

import "github.com/danilloubr/workplace-tasks-challenge/internal/models"

// IsAdmin gates the user-directory administrative operations.
func IsAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}

// CanUpdateTask allows admins and managers to update anyone's task,
// members only their own.
func CanUpdateTask(role models.Role, actorID, creatorID string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager:
		return true
	case models.RoleMember:
		return actorID == creatorID
	}
	return false
}

// CanDeleteTask allows admins to delete anyone's task; managers and
// members may only delete tasks they created themselves.
func CanDeleteTask(role models.Role, actorID, creatorID string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleManager, models.RoleMember:
		return actorID == creatorID
	}
	return false
}
