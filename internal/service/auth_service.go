package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

var errTokenRevoked = errors.New("token revoked")

// AdminClaims 后台令牌声明，Version 对应管理员当前的 token_version
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Version  uint64 `json:"ver"`
	jwt.RegisteredClaims
}

// AdminSession 登录成功后的会话信息
type AdminSession struct {
	Admin     *models.Admin
	Token     string
	ExpiresAt time.Time
}

// AuthService 后台认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	now       func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{cfg: cfg, adminRepo: adminRepo, now: time.Now}
}

// HashPassword bcrypt 哈希
func (s *AuthService) HashPassword(password string) (string, error) {
	return hashPassword(password)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword 按配置的密码策略校验
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

func (s *AuthService) signingKey() []byte {
	return []byte(s.cfg.JWT.SecretKey)
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.cfg.JWT.ExpireHours <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(s.cfg.JWT.ExpireHours) * time.Hour
}

// IssueToken 为管理员签发 HS256 令牌
func (s *AuthService) IssueToken(admin *models.Admin) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL())
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Version:  admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken 校验签名与有效期，不检查版本
func (s *AuthService) ParseToken(raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Authenticate 解析令牌并加载管理员；改密后版本号递增，旧令牌随之失效
func (s *AuthService) Authenticate(raw string) (*models.Admin, error) {
	claims, err := s.ParseToken(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	admin, err := s.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.TokenVersion != claims.Version {
		return nil, errTokenRevoked
	}
	return admin, nil
}

// Login 用户名密码登录。用户不存在与密码错误返回同一个错误
func (s *AuthService) Login(username, password string) (*AdminSession, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if admin == nil || !passwordMatches(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(admin)
	if err != nil {
		return nil, err
	}
	loginAt := s.now()
	if err := s.adminRepo.TouchLogin(admin.ID, loginAt); err != nil {
		logger.Warnw("admin_touch_login_failed", "admin_id", admin.ID, "error", err)
	} else {
		admin.LastLoginAt = &loginAt
	}
	return &AdminSession{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// ChangePassword 修改密码并吊销已签发的令牌
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if !passwordMatches(admin.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	admin.TokenVersion++
	return s.adminRepo.Update(admin)
}
