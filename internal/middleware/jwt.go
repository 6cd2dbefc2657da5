package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"realty_portal/internal/utils" // JWT utility functions
)

// Context keys set by the auth middleware
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	CallerKey = "caller"
)

// JWTAuthMiddleware validates access tokens and extracts the admin ID and role
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")               // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret, utils.AccessToken) // Refresh tokens are rejected here
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Given token not valid for any token type"})
			return
		}
		c.Set(UserIDKey, claims.UserID) // Store admin ID in context
		c.Set(RoleKey, claims.Role)     // Store role claim in context
		c.Next()                        // Proceed to the next handler
	}
}
