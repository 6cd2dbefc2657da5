package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"realty_portal/internal/domain"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NewAdmin is the input for AdminStore.Create.
type NewAdmin struct {
	Email     string
	Password  string
	Role      domain.Role
	IsStaff   bool
	IsActive  *bool // nil means active
	Superuser bool
}

// AdminStore persists admin accounts.
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// NormalizeEmail lower-cases and trims an address before lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password and inserts the account.
func (s *AdminStore) Create(ctx context.Context, in NewAdmin) (*domain.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &domain.Admin{
		Email:       NormalizeEmail(in.Email),
		Password:    string(hash),
		Role:        in.Role,
		IsActive:    in.IsActive == nil || *in.IsActive,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.Superuser,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Admin{}).Where("email = ?", admin.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}
		return tx.Create(admin).Error
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// Authenticate checks the credentials of an active account and stamps LastLogin.
func (s *AdminStore) Authenticate(ctx context.Context, email, password string) (*domain.Admin, error) {
	var admin domain.Admin
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !admin.IsActive || bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	now := time.Now()
	admin.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminStore) Get(ctx context.Context, id uint) (*domain.Admin, error) {
	var admin domain.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// List returns every account ordered by id.
func (s *AdminStore) List(ctx context.Context) ([]domain.Admin, error) {
	var admins []domain.Admin
	err := s.db.WithContext(ctx).Order("id").Find(&admins).Error
	return admins, err
}

// Delete removes the account unless the caller would remove their own admin account.
func (s *AdminStore) Delete(ctx context.Context, callerID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target domain.Admin
		if err := tx.First(&target, id).Error; err != nil {
			return err
		}
		if err := domain.CheckAdminDeletion(callerID, target); err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
}

// EnsureAdmin creates an admin-role account unless the email already exists.
func (s *AdminStore) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	_, err = s.Create(ctx, NewAdmin{Email: email, Password: password, Role: domain.RoleAdmin, IsStaff: true, Superuser: true})
	if errors.Is(err, ErrEmailTaken) {
		return false, nil
	}
	return err == nil, err
}
