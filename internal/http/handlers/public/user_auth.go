package public

import (
	"time"

	"github.com/trendsight-boutique/internal/constants"
	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 顾客注册请求
type UserRegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// UserLoginRequest 顾客登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserPasswordRequest 修改密码请求
type UserPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type userProfile struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DisplayName string     `json:"display_name"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toUserProfile(user *models.User) userProfile {
	return userProfile{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName(),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func userSessionPayload(session *service.UserSession) gin.H {
	return gin.H{
		"user":       toUserProfile(session.User),
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	}
}

// UserRegister 顾客注册，成功后直接返回登录令牌
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	session, err := h.UserAuthService.Register(service.RegisterUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if handlershared.RespondPasswordPolicyError(c, err) {
			return
		}
		respondUserRegisterError(c, err)
		return
	}
	response.Success(c, userSessionPayload(session))
}

// UserLogin 顾客登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	session, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondUserLoginError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("user_login_success", "user_id", session.User.ID)
	response.Success(c, userSessionPayload(session))
}

// GetUserProfile 当前顾客资料
func (h *Handler) GetUserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondUserProfileError(c, err)
		return
	}
	response.Success(c, toUserProfile(user))
}

// ChangeUserPassword 修改密码，旧令牌随之失效
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		if handlershared.RespondPasswordPolicyError(c, err) {
			return
		}
		respondUserPasswordError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// getUserID 读取当前顾客 ID，缺失时输出 401
func getUserID(c *gin.Context) (uint, bool) {
	id, ok := handlershared.ContextUint(c, constants.ContextKeyUserID)
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}
