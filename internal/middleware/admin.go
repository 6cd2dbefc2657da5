package middleware

import (
	"context"  // Lookup context
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"realty_portal/internal/domain" // Importing domain models
)

// AdminLookup loads an account by ID
type AdminLookup interface {
	Get(ctx context.Context, id uint) (*domain.Admin, error)
}

// LoadCallerMiddleware reloads the authenticated account on each request so role changes apply immediately
func LoadCallerMiddleware(admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(UserIDKey) // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}
		caller, err := admins.Get(c.Request.Context(), userID.(uint))
		// Deleted or deactivated accounts lose access even with a valid token
		if err != nil || !caller.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}
		c.Set(CallerKey, caller) // Store the loaded account
		c.Next()
	}
}

// Caller returns the account stored by LoadCallerMiddleware
func Caller(c *gin.Context) (*domain.Admin, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return nil, false
	}
	caller, ok := v.(*domain.Admin)
	return caller, ok
}

// AdminOnlyMiddleware allows callers whose role may manage admin accounts
func AdminOnlyMiddleware() gin.HandlerFunc {
	return requireCaller(func(a *domain.Admin) bool {
		return domain.CanManageAdmins(a.Role)
	})
}

// StaffOnlyMiddleware allows callers that may review contact messages
func StaffOnlyMiddleware() gin.HandlerFunc {
	return requireCaller(func(a *domain.Admin) bool {
		return domain.CanReviewMessages(a.Role, a.IsStaff)
	})
}

func requireCaller(allowed func(*domain.Admin) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}
		// Check the role loaded from the database, not the token claim
		if !allowed(caller) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
