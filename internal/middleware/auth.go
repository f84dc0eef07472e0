package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Cha17/gowra-sub000/internal/auth"
	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/service"
	"github.com/Cha17/gowra-sub000/pkg/response"
)

// ContextKeyPrincipal is the gin context key for the resolved principal
const ContextKeyPrincipal = "principal"

// ContextKeyEvent is the gin context key for the event loaded by the
// ownership guard
const ContextKeyEvent = "event"

// RequireAuth validates the bearer access token and re-fetches the principal
// from storage. Authorization decisions always reflect current account
// state, never the claims baked into the token.
func RequireAuth(tokens *auth.TokenManager, authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeUnauthorized, "Authorization header is required"))
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidToken, "Invalid authorization header format"))
			return
		}
		tokenString := authHeader[len(bearerPrefix):]
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidToken, "Token is empty"))
			return
		}

		claims, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeTokenExpired, "Access token has expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidToken, "Invalid access token"))
			return
		}

		principal, err := authSvc.ResolvePrincipal(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeUnauthorized, "Account no longer exists"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError("Failed to resolve account"))
			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireOrganizer rejects plain users with a needs_upgrade hint. Admins are
// a separate axis and do not pass this guard.
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized(""))
			return
		}
		if principal.IsAdmin() || principal.User == nil || !principal.User.IsOrganizer() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorWithDetails(
				response.ErrCodeNeedsUpgrade,
				"Organizer account required",
				map[string]string{"needs_upgrade": "true"},
			))
			return
		}
		c.Next()
	}
}

// RequireEventOwnership loads the event named by the id path parameter and
// rejects organizers who do not own it. The loaded event is stored in the
// context for the handler.
func RequireEventOwnership(eventSvc service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || principal.User == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized(""))
			return
		}

		event, err := eventSvc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrEventNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, response.NotFound("Event not found"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError(""))
			return
		}

		if !event.OwnedBy(principal.User) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("You do not own this event"))
			return
		}

		c.Set(ContextKeyEvent, event)
		c.Next()
	}
}

// RequireAdmin rejects non-admin principals
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized(""))
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetPrincipal extracts the resolved principal from gin context
func GetPrincipal(c *gin.Context) (*domain.Principal, bool) {
	v, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok
}

// GetEvent extracts the event loaded by RequireEventOwnership
func GetEvent(c *gin.Context) (*domain.Event, bool) {
	v, exists := c.Get(ContextKeyEvent)
	if !exists {
		return nil, false
	}
	e, ok := v.(*domain.Event)
	return e, ok
}
