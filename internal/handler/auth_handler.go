package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cha17/gowra-sub000/internal/auth"
	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/middleware"
	"github.com/Cha17/gowra-sub000/internal/service"
	"github.com/Cha17/gowra-sub000/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeEmailExists, "Email already exists"))
		case errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, response.BadRequest("Password must be at least 8 characters"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to register"))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(gin.H{"user": user}))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	_, resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidCredentials, "Invalid email or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to log in"))
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, response.Error(response.ErrCodeTokenExpired, "Refresh token has expired"))
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
			c.JSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidToken, "Invalid refresh token"))
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, response.Unauthorized("Account no longer exists"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to refresh token"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	if principal.IsAdmin() {
		c.JSON(http.StatusOK, response.Success(gin.H{"user": principal.Admin, "isAdmin": true}))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"user": principal.User, "isAdmin": false}))
}

// UpgradeToOrganizer handles POST /auth/upgrade-to-organizer
func (h *AuthHandler) UpgradeToOrganizer(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.User == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.UpgradeToOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.authService.UpgradeToOrganizer(c.Request.Context(), principal.User.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyOrganizer):
			c.JSON(http.StatusBadRequest, response.BadRequest("User is already an organizer"))
		case errors.Is(err, service.ErrInvalidOrgProfile):
			c.JSON(http.StatusBadRequest, response.BadRequest("Organization name, type and at least one event type are required"))
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("User not found"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to upgrade account"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}
