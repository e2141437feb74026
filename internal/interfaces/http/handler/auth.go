package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	BaseHandler
	auth       *appidentity.AuthService
	cookieName string
	cookieTTL  time.Duration
	cookies    config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService, session config.SessionConfig, cookies config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		cookieName: session.CookieName,
		cookieTTL:  session.TTL,
		cookies:    cookies,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.GET("/check", h.Check)
	}
}

// Register creates a new customer account
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Registration successful", user)
}

// Login verifies credentials and sets the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.cookieTTL.Seconds()))
	h.Success(c, "Login successful", user)
}

// Logout destroys the session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	h.Success(c, "Logout successful", nil)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User retrieved", user)
}

// Check reports whether the request carries a valid session
func (h *AuthHandler) Check(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	h.Success(c, "Session checked", gin.H{
		"authenticated": principal.Authenticated,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	switch h.cookies.SameSite {
	case "strict":
		c.SetSameSite(http.SameSiteStrictMode)
	case "none":
		c.SetSameSite(http.SameSiteNoneMode)
	default:
		c.SetSameSite(http.SameSiteLaxMode)
	}
	path := h.cookies.Path
	if path == "" {
		path = "/"
	}
	c.SetCookie(h.cookieName, value, maxAge, path, h.cookies.Domain, h.cookies.Secure, true)
}
