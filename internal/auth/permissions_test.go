package auth

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleViewer, PermTopologyRead, true},
		{RoleViewer, PermMeasurementRead, true},
		{RoleViewer, PermTopologyManage, false},
		{RoleViewer, PermMeasurementWrite, false},
		{RoleViewer, PermUserManage, false},

		{RoleOperator, PermTopologyRead, true},
		{RoleOperator, PermTopologyManage, true},
		{RoleOperator, PermMeasurementWrite, true},
		{RoleOperator, PermUserManage, false},

		{RoleAdmin, PermTopologyManage, true},
		{RoleAdmin, PermMeasurementWrite, true},
		{RoleAdmin, PermUserManage, true},

		{Role("unknown"), PermTopologyRead, false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestIsValidUserRole(t *testing.T) {
	for _, r := range ValidRoles {
		if !IsValidUserRole(r) {
			t.Errorf("valid role %q rejected", r)
		}
	}
	for _, r := range []Role{"", "root", "Admin"} {
		if IsValidUserRole(r) {
			t.Errorf("invalid role %q accepted", r)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"carla", "c.arla", "user_1", "a-b", "A1"}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("valid username %q rejected", u)
		}
	}
	invalid := []string{"", "has space", "em@il", "x/y", string(make([]byte, 65))}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("invalid username %q accepted", u)
		}
	}
}
