package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultUserTokenTTL = 7 * 24 * time.Hour
	userTokenAudience   = "storefront"
	maxNameLength       = 100
)

// UserClaims 顾客令牌声明
type UserClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Version uint64 `json:"ver"`
	jwt.RegisteredClaims
}

// UserSession 注册或登录成功后的会话
type UserSession struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// RegisterUserInput 注册参数
type RegisterUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserAuthService 顾客认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewUserAuthService 创建顾客认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo, now: time.Now}
}

// NormalizeEmail 校验邮箱格式并转为小写
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

func normalizeName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	return trimmed, trimmed != "" && len([]rune(trimmed)) <= maxNameLength
}

// Register 注册并直接登录
func (s *UserAuthService) Register(input RegisterUserInput) (*UserSession, error) {
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	firstName, okFirst := normalizeName(input.FirstName)
	lastName, okLast := normalizeName(input.LastName)
	if !okFirst || !okLast {
		return nil, ErrProfileInvalid
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		LastLoginAt:  &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Infow("user_registered", "user_id", user.ID)
	return s.newSession(user)
}

// Login 邮箱密码登录。邮箱不存在与密码错误返回同一个错误
func (s *UserAuthService) Login(email, password string) (*UserSession, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || !passwordMatches(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	loginAt := s.now()
	if err := s.userRepo.TouchLogin(user.ID, loginAt); err != nil {
		logger.Warnw("user_touch_login_failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &loginAt
	}
	return s.newSession(user)
}

func (s *UserAuthService) newSession(user *models.User) (*UserSession, error) {
	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &UserSession{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *UserAuthService) tokenTTL() time.Duration {
	if s.cfg.UserJWT.ExpireHours <= 0 {
		return defaultUserTokenTTL
	}
	return time.Duration(s.cfg.UserJWT.ExpireHours) * time.Hour
}

// IssueToken 签发顾客令牌；aud 固定为 storefront，与后台令牌互不通用
func (s *UserAuthService) IssueToken(user *models.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL())
	claims := UserClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Version: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{userTokenAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign user token: %w", err)
	}
	return signed, expiresAt, nil
}

// Authenticate 校验令牌并加载顾客；密码修改后旧令牌失效
func (s *UserAuthService) Authenticate(raw string) (*models.User, error) {
	claims := &UserClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(userTokenAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.TokenVersion != claims.Version {
		return nil, errTokenRevoked
	}
	return user, nil
}

// GetUserByID 读取顾客资料
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ChangePassword 修改密码并吊销已签发的令牌
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !passwordMatches(user.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.TokenVersion++
	return s.userRepo.Update(user)
}
