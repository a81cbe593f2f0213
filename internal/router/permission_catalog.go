package router

import (
	"sort"
	"strings"

	"github.com/trendsight-boutique/internal/authz"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// 无需鉴权的后台路由不进入权限目录
var publicAdminRoutes = map[string]bool{
	adminRoutePrefix + "login":   true,
	adminRoutePrefix + "captcha": true,
}

// PermissionEntry 权限目录条目，Permission 形如 GET:/admin/orders
type PermissionEntry struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// permissionCatalog 从已注册路由生成可分配的后台权限列表
func permissionCatalog(routes gin.RoutesInfo) []PermissionEntry {
	entries := make([]PermissionEntry, 0, len(routes))
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		method := strings.ToUpper(route.Method)
		if method == "HEAD" || method == "OPTIONS" {
			continue
		}
		if !strings.HasPrefix(route.Path, adminRoutePrefix) || publicAdminRoutes[route.Path] {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		entries = append(entries, PermissionEntry{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return entries
}

// permissionModule 取 /admin/ 之后的第一段作为分组，例如 /admin/orders/:id -> orders
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	switch {
	case len(segments) == 0 || segments[0] == "":
		return "system"
	case segments[0] == "admin" && len(segments) > 1:
		return segments[1]
	default:
		return segments[0]
	}
}
