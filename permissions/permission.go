package permissions

import (
	_ "embed"
	"encoding/json"
	"farmstay/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

const (
	HomeAdmin     = "/admin"
	HomeDashboard = "/dashboard"
	HomeVisitor   = "/"
)

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up a chi route pattern. Trailing slashes are ignored.
// The second result is false when the route has no entry.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	path = normalize(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalize(rp.Path) == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}, false
	}

	return r.Endpoints[idx], true
}

// Allows reports whether role is listed on the endpoint. An empty list admits nobody.
func (p Permission) Allows(role string) bool {
	return slices.Contains(p.Permissions, role)
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}

// ResolveRole applies the admin email fallback on top of the stored role.
func ResolveRole(adminEmail, email, role string) string {
	if adminEmail != "" && strings.EqualFold(strings.TrimSpace(adminEmail), strings.TrimSpace(email)) {
		return constant.RoleAdmin
	}

	return role
}

// HomePath is the landing page for a role after sign in.
func HomePath(role string) string {
	switch role {
	case constant.RoleAdmin:
		return HomeAdmin
	case constant.RoleOwner:
		return HomeDashboard
	default:
		return HomeVisitor
	}
}

func normalize(path string) string {
	if path == "/" {
		return path
	}

	return strings.TrimSuffix(path, "/")
}
