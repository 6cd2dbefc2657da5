package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"realty_portal/internal/domain"     // Importing domain models
	"realty_portal/internal/middleware" // Authenticated caller
	"realty_portal/internal/store"      // Admin persistence
)

// Request struct for admin creation
type CreateAdminRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=254"` // Login identifier
	Password string `json:"password" form:"password" binding:"required,min=6"`    // Plain password, hashed before storage
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=admin moderator user"`
	IsActive *bool  `json:"is_active" form:"is_active"` // Defaults to true
	IsStaff  bool   `json:"is_staff" form:"is_staff"`   // Defaults to false
}

// ListAdminsHandler returns every admin account
func ListAdminsHandler(admins *store.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := admins.List(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "fetch admins")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateAdminHandler adds an admin account
func CreateAdminHandler(admins *store.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAdminRequest // Bind request to struct
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		role := domain.RoleUser // Default role
		if req.Role != "" {
			role = domain.Role(req.Role)
		}
		admin, err := admins.Create(c.Request.Context(), store.NewAdmin{
			Email:    req.Email,
			Password: req.Password,
			Role:     role,
			IsActive: req.IsActive,
			IsStaff:  req.IsStaff,
		})
		if errors.Is(err, store.ErrEmailTaken) {
			respondValidation(c, map[string]string{"email": "admin with this email already exists."})
			return
		}
		if err != nil {
			respondStoreError(c, err, "create admin")
			return
		}
		log := logrus.WithFields(logrus.Fields{"admin_id": admin.ID, "role": admin.Role})
		if caller, ok := middleware.Caller(c); ok {
			log = log.WithField("created_by", caller.ID)
		}
		log.Info("admin created")
		c.JSON(http.StatusCreated, gin.H{
			"message": "Admin created successfully",
			"admin":   admin,
		})
	}
}

// DeleteAdminHandler removes an admin account; nobody may remove their own admin-role account
func DeleteAdminHandler(admins *store.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}
		caller, ok := middleware.Caller(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		err := admins.Delete(c.Request.Context(), caller.ID, id)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		case errors.Is(err, domain.ErrSelfDeletion):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own admin account."})
			return
		case err != nil:
			respondStoreError(c, err, "delete admin")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": id, "deleted_by": caller.ID}).Info("admin deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
	}
}
