package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todo-app-server/internal/token"
	"todo-app-server/internal/utils"
)

// AccessTokenCookie is the cookie carrying the access token for browser
// clients that cannot set an Authorization header.
const AccessTokenCookie = "accessToken"

// AuthMiddleware verifies the access token from the Authorization header or
// the access-token cookie and puts the resolved user ID into the context.
// Every failure gets the same response; callers cannot tell a missing token
// from a malformed or expired one.
func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString, _ = c.Cookie(AccessTokenCookie)
		}
		if tokenString == "" {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userID, err := issuer.Verify(tokenString)
		if err != nil {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", userID)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// GetUserID returns the authenticated user ID set by AuthMiddleware.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}
