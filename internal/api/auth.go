package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Token lifetimes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"realty_portal/internal/middleware" // Authenticated caller
	"realty_portal/internal/store"      // Admin persistence
	"realty_portal/internal/utils"      // Utility functions
)

// TokenConfig holds signing settings for issued tokens
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" form:"password" binding:"required"` // Password must be provided
}

// Request struct for token refresh
type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" binding:"required"` // Refresh token from login
}

// LoginHandler authenticates an admin and returns an access and a refresh token
func LoginHandler(admins *store.AdminStore, tokens TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind request to struct
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		admin, err := admins.Authenticate(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, store.ErrInvalidCredentials) {
			logrus.WithField("email", store.NormalizeEmail(req.Email)).Warn("failed login")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		if err != nil {
			respondStoreError(c, err, "log in")
			return
		}
		// Generate the token pair
		pair, err := utils.GenerateTokenPair(admin.ID, admin.Role, tokens.Secret, tokens.AccessTTL, tokens.RefreshTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": admin.ID, "role": admin.Role}).Info("admin logged in")
		c.JSON(http.StatusOK, gin.H{
			"user":    admin,        // Account details
			"token":   pair.Access,  // Access token
			"refresh": pair.Refresh, // Refresh token
		})
	}
}

// RefreshHandler exchanges a refresh token for a new access token
func RefreshHandler(admins *store.AdminStore, tokens TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		claims, err := utils.ParseJWT(req.Refresh, tokens.Secret, utils.RefreshToken) // Access tokens are rejected here
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}
		// The account may have been removed or disabled since login
		admin, err := admins.Get(c.Request.Context(), claims.UserID)
		if err != nil || !admin.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}
		access, err := utils.GenerateJWT(admin.ID, admin.Role, utils.AccessToken, tokens.Secret, tokens.AccessTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": access})
	}
}

// MeHandler returns the authenticated account
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.Caller(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or user not recognized"})
			return
		}
		c.JSON(http.StatusOK, caller) // Flat account object
	}
}
