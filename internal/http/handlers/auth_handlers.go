package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/schedulo/domain"
	"github.com/you/schedulo/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests.
type AuthHandlers struct {
	authSvc      domain.AuthService
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandlers creates new auth handlers. cookieMaxAge is the
// session cookie lifetime in seconds and matches the token TTL.
func NewAuthHandlers(authSvc domain.AuthService, cookieMaxAge int, cookieSecure bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest represents payloads that carry only an email address.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest represents the OTP verification payload.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// ResetPasswordRequest represents the password reset payload. Both
// "password" and "newPassword" are accepted for the new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func (r *ResetPasswordRequest) password() string {
	if r.Password != "" {
		return r.Password
	}
	return r.NewPassword
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		default:
			h.internal(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful."})
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), c.ClientIP(), req.Email, req.Password)
	if err != nil {
		var rlErr *domain.RateLimitError
		switch {
		case errors.As(err, &rlErr):
			c.Header("Retry-After", formatSeconds(rlErr.RetryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many login attempts, please try again later.",
				"retryAfter": rlErr.RetryAfter,
			})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		default:
			h.internal(c, err)
		}
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":    result.User.ID.Hex(),
			"name":  result.User.Name,
			"email": result.User.Email,
		},
	})
}

// Logout handles POST /auth/logout. Logout is client-side cookie
// clearing only; tokens carry no server-side revocation list.
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		default:
			h.internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified. Proceed to reset password."})
}

// ResendOTP handles POST /auth/resend-otp
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New OTP sent successfully to your email"})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.password()); err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
		case errors.Is(err, domain.ErrResetNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "User not verified for reset"})
		default:
			h.internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// Me handles GET /auth/me (requires session)
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"name":     user.Name,
			"email":    user.Email,
			"avatar":   user.AvatarInitials(),
			"joinDate": user.JoinDate(),
		},
	})
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string) {
	if h.cookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookie, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandlers) clearSessionCookie(c *gin.Context) {
	if h.cookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
}

// internal logs the cause server-side and answers with a message that
// never leaks it.
func (h *AuthHandlers) internal(c *gin.Context, err error) {
	log.Printf("AUTH_INTERNAL_ERROR: request_id=%s error=%v", c.GetString("request_id"), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

func formatSeconds(s int64) string {
	if s <= 0 {
		s = 60
	}
	return strconv.FormatInt(s, 10)
}
