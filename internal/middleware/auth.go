package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"attendance/internal/identity"
	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware chain.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
	CtxProfile   = "profile"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// extractToken tries the access_token cookie first, then the Authorization
// header.
func extractToken(c *gin.Context) (string, bool) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth validates the JWT and materializes the principal on the
// context: identity id, email, and the role claim translated through the
// rbac adapter. A missing or malformed role claim degrades to the lowest
// privilege rather than failing.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		roleName, _ := claims["role"].(string)

		c.Set(CtxUserID, sub)
		c.Set(CtxUserEmail, email)
		c.Set(CtxUserRole, rbac.ParseRole(roleName))

		c.Next()
	}
}

// RequireCapability gates a route on the evaluator: the selector picks the
// capability out of the computed set, and a caller without it is rejected
// before the handler — and therefore before any data-store call — runs.
// Must be chained after RequireAuth.
func RequireCapability(selector func(rbac.PermissionSet) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		if !selector(rbac.Evaluate(role)) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Next()
	}
}

// LoadProfile resolves the caller's tenant-scoped profile with the same
// bounded lookup the identity resolver uses. Routes that operate on tenant
// data chain this after RequireAuth; a caller whose profile is missing or
// inactive cannot reach them.
func LoadProfile(lookup identity.ProfileLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(CtxUserEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), identity.DefaultResolveTimeout)
		defer cancel()

		profile, err := lookup.GetActiveByEmail(ctx, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
			return
		}

		c.Set(CtxProfile, profile)
		c.Next()
	}
}

// CurrentRole returns the role placed on the context by RequireAuth.
func CurrentRole(c *gin.Context) (rbac.Role, bool) {
	v, exists := c.Get(CtxUserRole)
	if !exists {
		return rbac.RoleEmployee, false
	}
	role, ok := v.(rbac.Role)
	return role, ok
}

// CurrentUserID parses the identity UUID from the context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.GetString(CtxUserID)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CurrentProfile returns the profile placed on the context by LoadProfile.
func CurrentProfile(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(CtxProfile)
	if !exists {
		return nil, false
	}
	profile, ok := v.(*model.User)
	return profile, ok
}

// AccessTokenTTL is exported for the auth service issuing tokens.
const AccessTokenTTL = 24 * time.Hour
