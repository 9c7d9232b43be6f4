package middleware

import (
	"net/http"
	"strings"

	"creatorkart/config"
	"creatorkart/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired. Handlers read them through the Get*
// helpers below instead of touching the keys directly.
const (
	ctxUserID = "auth.user_id"
	ctxEmail  = "auth.email"
	ctxRole   = "auth.role"
)

// AuthRequired rejects requests without a valid bearer access token and
// records the caller's identity and role for downstream handlers.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// RequireRole gates a route group to the listed roles. ADMIN is not implied
// anywhere; admin routes name it explicitly.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// GetUserID returns the authenticated user's ID; zero when unauthenticated.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		return v.(uint)
	}
	return 0
}

// GetRole returns the authenticated user's role; empty when unauthenticated.
func GetRole(c *gin.Context) string {
	if v, ok := c.Get(ctxRole); ok {
		return v.(string)
	}
	return ""
}

// GetEmail returns the authenticated user's email; empty when unauthenticated.
func GetEmail(c *gin.Context) string {
	if v, ok := c.Get(ctxEmail); ok {
		return v.(string)
	}
	return ""
}
