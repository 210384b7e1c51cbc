package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/household-budget/internal/auth/domain"
	"github.com/fintrack/household-budget/internal/auth/service"
)

const (
	ctxUserID  = "auth.user_id"
	ctxIsAdmin = "auth.is_admin"
)

// TokenVerifier resolves a bearer token into its claims.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*service.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity on the request context.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a bearer token"})
			return
		}

		claims, err := verifier.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxIsAdmin, claims.Role == string(domain.RoleAdmin))
		c.Next()
	}
}

// Caller returns the authenticated user id and admin flag set by
// RequireAuth. ok is false when the request was not authenticated.
func Caller(c *gin.Context) (userID string, admin bool, ok bool) {
	id, exists := c.Get(ctxUserID)
	if !exists {
		return "", false, false
	}
	userID, ok = id.(string)
	if !ok || userID == "" {
		return "", false, false
	}
	return userID, c.GetBool(ctxIsAdmin), true
}
