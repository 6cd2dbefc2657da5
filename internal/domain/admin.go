package domain

import (
	"errors" // Sentinel errors
	"time"   // Timestamps
)

// Role is the closed set of account roles
type Role string

const (
	RoleAdmin     Role = "admin"     // Manages admin accounts
	RoleModerator Role = "moderator" // Reviews content and messages
	RoleUser      Role = "user"      // Default role
)

// ErrSelfDeletion is returned when an admin tries to remove their own admin-role account
var ErrSelfDeletion = errors.New("cannot delete own admin account")

// ParseRole validates a role string
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Admin Model
type Admin struct {
	ID          uint       `gorm:"primaryKey" json:"id"`                         // Primary key
	Email       string     `gorm:"size:254;uniqueIndex;not null" json:"email"`   // Unique login identifier
	Password    string     `gorm:"size:255;not null" json:"-"`                   // Hashed password
	Role        Role       `gorm:"size:20;not null" json:"role"`                 // admin, moderator or user
	IsActive    bool       `gorm:"not null" json:"is_active"`                    // Inactive accounts cannot log in
	IsStaff     bool       `gorm:"not null" json:"is_staff"`                     // Staff flag
	IsSuperuser bool       `gorm:"not null" json:"-"`                            // Set for bootstrap accounts
	LastLogin   *time.Time `json:"last_login"`                                   // Stamped on successful login
	CreatedAt   time.Time  `json:"created_at"`                                   // Creation time
}

// CanManageAdmins reports whether a caller with the given role may list, create or delete admins
func CanManageAdmins(role Role) bool {
	return role == RoleAdmin
}

// CanReviewMessages reports whether a caller may read and flag contact messages
func CanReviewMessages(role Role, staff bool) bool {
	return staff || role == RoleAdmin || role == RoleModerator
}

// CheckAdminDeletion enforces that an admin never deletes their own admin-role account
func CheckAdminDeletion(callerID uint, target Admin) error {
	if target.Role == RoleAdmin && target.ID == callerID {
		return ErrSelfDeletion
	}
	return nil
}
