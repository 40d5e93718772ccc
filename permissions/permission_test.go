package permissions_test

import (
	"farmstay/permissions"
	"farmstay/shared/constant"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	perms := permissions.Get()
	require.NotNil(t, perms)

	tests := []struct {
		name    string
		path    string
		method  string
		skip    bool
		allowed []string
		denied  []string
	}{
		{name: "public search", path: "/v1/farmhouses", method: http.MethodGet, skip: true},
		{name: "public booking request", path: "/v1/booking-requests/", method: http.MethodPost, skip: true},
		{name: "callback", path: "/v1/auth/callback", method: http.MethodGet, skip: true},
		{name: "create listing", path: "/v1/farmhouses/", method: http.MethodPost, allowed: []string{constant.RoleOwner, constant.RoleAdmin}, denied: []string{constant.RoleVisitor}},
		{name: "book a stay", path: "/v1/bookings/", method: http.MethodPost, allowed: []string{constant.RoleVisitor, constant.RoleOwner, constant.RoleAdmin}},
		{name: "admin dashboard", path: "/v1/dashboard/admin", method: http.MethodGet, allowed: []string{constant.RoleAdmin}, denied: []string{constant.RoleOwner, constant.RoleVisitor}},
		{name: "settings write", path: "/v1/site-settings/{key}", method: http.MethodPut, allowed: []string{constant.RoleAdmin}, denied: []string{constant.RoleOwner}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission, listed := perms.FindPermissions(tt.path, tt.method)
			require.True(t, listed)
			assert.Equal(t, tt.skip, permission.Skip)

			for _, role := range tt.allowed {
				assert.True(t, permission.Allows(role), role)
			}

			for _, role := range tt.denied {
				assert.False(t, permission.Allows(role), role)
			}
		})
	}

	for _, route := range [][2]string{
		{"/v1/unknown", http.MethodGet},
		{"/v1/bookings/{id}/refund", http.MethodPost},
		{"/v1/farmhouses", http.MethodDelete},
	} {
		permission, listed := perms.FindPermissions(route[0], route[1])
		assert.False(t, listed, route[0])
		assert.False(t, permission.Skip, route[0])
		assert.False(t, permission.Allows(constant.RoleVisitor), route[0])
	}
}

func TestGet_EveryGuardedRouteListsRoles(t *testing.T) {
	perms := permissions.Get()
	require.NotNil(t, perms)

	for _, endpoint := range perms.Endpoints {
		if endpoint.Skip {
			continue
		}

		assert.NotEmpty(t, endpoint.Permissions, "%s %s", endpoint.Method, endpoint.Path)
	}
}

func TestResolveRole(t *testing.T) {
	assert.Equal(t, constant.RoleAdmin, permissions.ResolveRole("admin@farmstay.test", " ADMIN@farmstay.test", constant.RoleVisitor))
	assert.Equal(t, constant.RoleOwner, permissions.ResolveRole("admin@farmstay.test", "owner@farmstay.test", constant.RoleOwner))
	assert.Equal(t, constant.RoleVisitor, permissions.ResolveRole("", "", constant.RoleVisitor))
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, permissions.HomeAdmin, permissions.HomePath(constant.RoleAdmin))
	assert.Equal(t, permissions.HomeDashboard, permissions.HomePath(constant.RoleOwner))
	assert.Equal(t, permissions.HomeVisitor, permissions.HomePath(constant.RoleVisitor))
	assert.Equal(t, permissions.HomeVisitor, permissions.HomePath(""))
}
