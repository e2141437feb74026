package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// principalKey is the gin context key the resolved principal is stored under
const principalKey = "principal"

// SessionConfig holds session middleware dependencies
type SessionConfig struct {
	Sessions   auth.SessionStore
	Users      identity.UserRepository
	CookieName string
	Logger     *zap.Logger
}

// Session resolves the caller's principal once per request. Requests without
// a valid session proceed as anonymous; sessions pointing at a missing or
// deactivated account are destroyed.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, resolvePrincipal(c, cfg))
		c.Next()
	}
}

func resolvePrincipal(c *gin.Context, cfg SessionConfig) identity.Principal {
	token, err := c.Cookie(cfg.CookieName)
	if err != nil || token == "" {
		return identity.Anonymous()
	}

	ctx := c.Request.Context()
	userID, err := cfg.Sessions.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrSessionNotFound) {
			cfg.Logger.Error("session lookup failed", zap.Error(err))
		}
		return identity.Anonymous()
	}

	user, err := cfg.Users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			cfg.Logger.Error("session user lookup failed", zap.Error(err))
			return identity.Anonymous()
		}
		destroySession(ctx, cfg, token)
		return identity.Anonymous()
	}
	if !user.IsActive {
		destroySession(ctx, cfg, token)
		return identity.Anonymous()
	}

	if err := cfg.Sessions.Refresh(ctx, token); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		cfg.Logger.Warn("session refresh failed", zap.Error(err))
	}
	return identity.NewPrincipal(user)
}

func destroySession(ctx context.Context, cfg SessionConfig, token string) {
	if err := cfg.Sessions.Destroy(ctx, token); err != nil {
		cfg.Logger.Error("failed to destroy stale session", zap.Error(err))
	}
}

// GetPrincipal returns the principal resolved by the session middleware
func GetPrincipal(c *gin.Context) identity.Principal {
	if v, ok := c.Get(principalKey); ok {
		if principal, ok := v.(identity.Principal); ok {
			return principal
		}
	}
	return identity.Anonymous()
}

// RequireAuthenticated aborts unauthenticated requests with 401
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests from non-admin callers with 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if !principal.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}
