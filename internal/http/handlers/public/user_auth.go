package public

import (
	"errors"
	"time"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserAuthService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "name is required", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, "email already registered", nil)
		case errors.Is(err, service.ErrPasswordTooShort):
			respondError(c, response.CodeBadRequest, "password too short", nil)
		default:
			respondError(c, response.CodeInternal, "registration failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "registered, please verify your email", gin.H{
		"user": userView(user),
	})
}

// UserVerifyEmail 邮箱激活
func (h *Handler) UserVerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if err := h.UserAuthService.VerifyEmail(token); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, response.CodeBadRequest, "invalid or expired verification token", nil)
		default:
			respondError(c, response.CodeInternal, "email verification failed", err)
		}
		return
	}
	response.Success(c, gin.H{"verified": true})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(c, response.CodeUnauthorized, "email not verified", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeUnauthorized, "account disabled", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UserForgotPasswordRequest 找回密码请求
type UserForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserForgotPassword 发起密码重置
func (h *Handler) UserForgotPassword(c *gin.Context) {
	var req UserForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.ForgotPassword(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		default:
			respondError(c, response.CodeInternal, "password reset request failed", err)
		}
		return
	}

	// 不暴露邮箱是否注册
	response.SuccessWithMsg(c, "if the email is registered, a reset link has been sent", gin.H{"sent": true})
}

// UserResetPasswordRequest 重置密码请求
type UserResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UserResetPassword 使用重置令牌设置新密码
func (h *Handler) UserResetPassword(c *gin.Context) {
	var req UserResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.ResetPassword(c.Param("token"), req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, response.CodeBadRequest, "invalid or expired reset token", nil)
		case errors.Is(err, service.ErrPasswordTooShort):
			respondError(c, response.CodeBadRequest, "password too short", nil)
		default:
			respondError(c, response.CodeInternal, "password reset failed", err)
		}
		return
	}
	response.Success(c, gin.H{"reset": true})
}

// GetMe 获取当前用户资料
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		default:
			respondError(c, response.CodeInternal, "fetch profile failed", err)
		}
		return
	}
	response.Success(c, userView(user))
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "name cannot be empty", nil)
		default:
			respondError(c, response.CodeInternal, "update profile failed", err)
		}
		return
	}
	response.Success(c, userView(user))
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 登录态修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		case errors.Is(err, service.ErrPasswordMismatch):
			respondError(c, response.CodeBadRequest, "current password is incorrect", nil)
		case errors.Is(err, service.ErrPasswordTooShort):
			respondError(c, response.CodeBadRequest, "password too short", nil)
		default:
			respondError(c, response.CodeInternal, "change password failed", err)
		}
		return
	}
	response.Success(c, gin.H{"changed": true})
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"is_verified": user.IsVerified,
		"created_at":  user.CreatedAt,
	}
}
