package auth

// Permission represents a named capability in the system.
type Permission string

// Permission constants.
const (
	PermTopologyRead     Permission = "topology:read"
	PermTopologyManage   Permission = "topology:manage"
	PermMeasurementRead  Permission = "measurement:read"
	PermMeasurementWrite Permission = "measurement:write"
	PermUserManage       Permission = "user:manage"
)

// rolePermissions maps each role to its granted permissions.
// This is the single source of truth for the authorisation model.
var rolePermissions = map[Role][]Permission{
	RoleViewer: {
		PermTopologyRead,
		PermMeasurementRead,
	},
	RoleOperator: {
		PermTopologyRead,
		PermTopologyManage,
		PermMeasurementRead,
		PermMeasurementWrite,
	},
	RoleAdmin: {
		PermTopologyRead,
		PermTopologyManage,
		PermMeasurementRead,
		PermMeasurementWrite,
		PermUserManage,
	},
}

// HasPermission returns true if the role grants the given permission.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsForRole returns the permissions granted to a role.
// The returned slice must not be modified.
func PermissionsForRole(role Role) []Permission {
	return rolePermissions[role]
}
