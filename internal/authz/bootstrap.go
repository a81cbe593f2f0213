package authz

import (
	"fmt"

	"github.com/trendsight-boutique/internal/constants"
)

// Role 内置角色及其授权
type Role struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Permission 路由模板 + 方法（* 表示任意方法）
type Permission struct {
	Object string `json:"object"`
	Action string `json:"action"`
}

var builtinRoles = []Role{
	{
		Name: constants.RoleCatalogManager,
		Permissions: []Permission{
			{Object: "/admin/products", Action: "*"},
			{Object: "/admin/products/:id", Action: "*"},
		},
	},
	{
		Name: constants.RoleOrderViewer,
		Permissions: []Permission{
			{Object: "/admin/orders", Action: "GET"},
			{Object: "/admin/orders/:id", Action: "GET"},
		},
	},
}

// Roles 返回内置角色表
func (s *Service) Roles() []Role {
	out := make([]Role, len(builtinRoles))
	copy(out, builtinRoles)
	return out
}

// HasRole 角色是否为内置角色
func (s *Service) HasRole(role string) bool {
	_, ok := lookupRole(NormalizeRole(role))
	return ok
}

func lookupRole(name string) (Role, bool) {
	for _, role := range builtinRoles {
		if role.Name == name {
			return role, true
		}
	}
	return Role{}, false
}

// SyncRolePolicies 以内置角色表重建 p 策略，g 中的管理员分配保持不变（可重复执行）
func (s *Service) SyncRolePolicies() error {
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	for _, role := range builtinRoles {
		if _, err := s.enforcer.RemoveFilteredPolicy(0, role.Name); err != nil {
			return fmt.Errorf("reset policies for %s: %w", role.Name, err)
		}
		rules := make([][]string, 0, len(role.Permissions))
		for _, perm := range role.Permissions {
			rules = append(rules, []string{role.Name, NormalizeObject(perm.Object), perm.Action})
		}
		if _, err := s.enforcer.AddPolicies(rules); err != nil {
			return fmt.Errorf("add policies for %s: %w", role.Name, err)
		}
	}
	return nil
}
