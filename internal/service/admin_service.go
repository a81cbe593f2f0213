package service

import (
	"strings"

	"github.com/trendsight-boutique/internal/authz"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"
)

const protectedSuperAdminUsername = "admin"

// AdminDetail 管理员及其角色
type AdminDetail struct {
	*models.Admin
	Roles []string `json:"roles"`
}

// CreateAdminInput 创建管理员输入
type CreateAdminInput struct {
	Username string
	Password string
	IsSuper  bool
	Roles    []string
}

// AdminService 后台管理员管理
type AdminService struct {
	adminRepo   repository.AdminRepository
	authService *AuthService
	authz       *authz.Service
}

// NewAdminService 创建管理员服务
func NewAdminService(adminRepo repository.AdminRepository, authService *AuthService, authzService *authz.Service) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		authService: authService,
		authz:       authzService,
	}
}

// List 管理员列表（附角色）
func (s *AdminService) List() ([]AdminDetail, error) {
	admins, err := s.adminRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]AdminDetail, 0, len(admins))
	for i := range admins {
		detail, err := s.detail(&admins[i])
		if err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, nil
}

// Create 创建管理员；密码需满足策略，角色必须已存在
func (s *AdminService) Create(input CreateAdminInput) (*AdminDetail, error) {
	username, err := normalizeAdminUsername(input.Username)
	if err != nil {
		return nil, err
	}
	password := strings.TrimSpace(input.Password)
	if password == "" {
		return nil, ErrWeakPassword
	}

	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}
	if err := s.authService.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := s.checkRoles(input.Roles); err != nil {
		return nil, err
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		IsSuper:      input.IsSuper || strings.EqualFold(username, protectedSuperAdminUsername),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	if len(input.Roles) > 0 && s.authz != nil {
		if err := s.authz.SetAdminRoles(admin.ID, input.Roles); err != nil {
			return nil, err
		}
	}

	logger.Infow("admin_created",
		"admin_id", admin.ID,
		"username", admin.Username,
		"is_super", admin.IsSuper,
		"roles", input.Roles,
	)
	detail, err := s.detail(admin)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// SetRoles 覆盖管理员角色
func (s *AdminService) SetRoles(adminID uint, roles []string) (*AdminDetail, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	if admin.IsSuper {
		return nil, ErrSuperAdminRoles
	}
	if s.authz == nil {
		return nil, ErrRoleInvalid
	}
	if err := s.checkRoles(roles); err != nil {
		return nil, err
	}
	if err := s.authz.SetAdminRoles(admin.ID, roles); err != nil {
		return nil, err
	}
	logger.Infow("admin_roles_updated", "admin_id", admin.ID, "roles", roles)

	detail, err := s.detail(admin)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *AdminService) checkRoles(roles []string) error {
	for _, role := range roles {
		if s.authz == nil {
			return ErrRoleInvalid
		}
		if !s.authz.HasRole(role) {
			return ErrRoleInvalid
		}
	}
	return nil
}

func (s *AdminService) detail(admin *models.Admin) (AdminDetail, error) {
	detail := AdminDetail{Admin: admin, Roles: []string{}}
	if s.authz == nil {
		return detail, nil
	}
	roles, err := s.authz.AdminRoles(admin.ID)
	if err != nil {
		return AdminDetail{}, err
	}
	if roles != nil {
		detail.Roles = roles
	}
	return detail, nil
}

func normalizeAdminUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return "", ErrUsernameInvalid
	}
	length := len([]rune(trimmed))
	if length < 3 || length > 64 {
		return "", ErrUsernameInvalid
	}
	return trimmed, nil
}
