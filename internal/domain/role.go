package domain

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when a role lacks the capability for an operation.
var ErrForbidden = errors.New("forbidden")

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleLeader      Role = "leader"
	RoleContributor Role = "contributor"
	RoleViewer      Role = "viewer"
)

type Capability string

const (
	CapView           Capability = "view"
	CapEditAction     Capability = "edit_action"
	CapManageProject  Capability = "manage_project"
	CapManageStrategy Capability = "manage_strategy"
	CapManageUsers    Capability = "manage_users"
)

// NormalizeRole maps a wire role name to a Role. Unknown or empty names
// become RoleViewer.
func NormalizeRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleLeader:
		return RoleLeader
	case RoleContributor:
		return RoleContributor
	default:
		return RoleViewer
	}
}

// Can reports whether role may perform the capability.
func Can(role Role, c Capability) bool {
	switch NormalizeRole(string(role)) {
	case RoleAdmin:
		return true
	case RoleLeader:
		return c != CapManageUsers
	case RoleContributor:
		return c == CapView || c == CapEditAction
	default:
		return c == CapView
	}
}
