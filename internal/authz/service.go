package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiPrefix       = "/api/v1"
	policyTableName = "casbin_rule"
)

// 请求主体为 admin:<id>，g 把管理员挂到内置角色上，p 为角色对路由模板的授权
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// ErrUnknownRole 角色不在内置角色表中
var ErrUnknownRole = errors.New("unknown role")

var errUnavailable = errors.New("authz service unavailable")

// Service 后台 RBAC 授权，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", policyTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

// EnforceAdmin 判断管理员能否以 method 访问 path
func (s *Service) EnforceAdmin(adminID uint, path, method string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, errUnavailable
	}
	return s.enforcer.Enforce(subject(adminID), NormalizeObject(path), strings.ToUpper(strings.TrimSpace(method)))
}

// SetAdminRoles 覆盖管理员角色；空列表即撤销全部角色
func (s *Service) SetAdminRoles(adminID uint, roles []string) error {
	if adminID == 0 {
		return errors.New("admin id is required")
	}
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	names, err := normalizeRoles(roles)
	if err != nil {
		return err
	}

	sub := subject(adminID)
	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(0, sub); err != nil {
		return fmt.Errorf("clear admin roles: %w", err)
	}
	if len(names) == 0 {
		return nil
	}
	rules := make([][]string, 0, len(names))
	for _, name := range names {
		rules = append(rules, []string{sub, name})
	}
	if _, err := s.enforcer.AddGroupingPolicies(rules); err != nil {
		return fmt.Errorf("assign admin roles: %w", err)
	}
	return nil
}

// AdminRoles 查询管理员当前角色（按名称排序）
func (s *Service) AdminRoles(adminID uint) ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, errUnavailable
	}
	roles, err := s.enforcer.GetRolesForUser(subject(adminID))
	if err != nil {
		return nil, fmt.Errorf("get admin roles: %w", err)
	}
	result := make([]string, 0, len(roles))
	for _, role := range roles {
		if _, ok := lookupRole(role); ok {
			result = append(result, role)
		}
	}
	sort.Strings(result)
	return result, nil
}

func subject(adminID uint) string {
	return fmt.Sprintf("admin:%d", adminID)
}

func normalizeRoles(roles []string) ([]string, error) {
	seen := make(map[string]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, raw := range roles {
		name := NormalizeRole(raw)
		if _, ok := lookupRole(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// NormalizeRole 统一角色写法："Catalog Manager" -> "catalog_manager"
func NormalizeRole(role string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(role)), " ", "_")
}

// NormalizeObject 把请求路径或路由模板转为授权对象（去掉 /api/v1 前缀）
func NormalizeObject(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == apiPrefix {
		return "/"
	}
	if strings.HasPrefix(path, apiPrefix+"/") {
		return path[len(apiPrefix):]
	}
	return path
}
