// services/auth_service.go
package services

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rebeauty-backend/config"
	"rebeauty-backend/models"
	"rebeauty-backend/utils"
)

// AuthService is the credential store and session gate: it verifies staff
// logins, issues and resolves bearer tokens, and guards staff creation.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Authenticate checks the email/password pair and issues a signed token plus
// the public identity. It never mutates stored state.
func (s *AuthService) Authenticate(email, password string) (string, *models.Identity, error) {
	var staff models.Staff
	if err := s.db.Where("email = ?", email).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup staff: %w", err)
	}

	if !utils.CheckPasswordHash(password, staff.HashedPassword) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.cfg, &staff)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, identityOf(&staff), nil
}

// ResolveUser verifies the token and returns the identity of the staff it
// references. Any failure, including a staff row that no longer exists,
// yields ErrUnauthenticated.
func (s *AuthService) ResolveUser(token string) (*models.Identity, error) {
	staffID, err := utils.ParseToken(s.cfg, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var staff models.Staff
	if err := s.db.First(&staff, staffID).Error; err != nil {
		return nil, ErrUnauthenticated
	}

	return identityOf(&staff), nil
}

// ResolveOptionalUser is ResolveUser that returns nil instead of failing.
func (s *AuthService) ResolveOptionalUser(token string) *models.Identity {
	identity, err := s.ResolveUser(token)
	if err != nil {
		return nil
	}
	return identity
}

// CreateStaffInput defines the fields for a new staff account.
type CreateStaffInput struct {
	StaffCode *string `json:"staff_code"`
	Name      *string `json:"name"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
}

// CreateStaff persists a new account. While the store is empty the caller
// must present the configured bootstrap code; once at least one account
// exists the caller must be authenticated. The zero-count check and the
// insert run in one serializable transaction: two concurrent bootstrap
// calls cannot both observe an empty table and both commit, even with
// distinct emails — the loser aborts on commit.
func (s *AuthService) CreateStaff(input CreateStaffInput, bootstrapCode string, caller *models.Identity) (*models.Staff, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	staff := models.Staff{
		StaffCode:      input.StaffCode,
		Name:           input.Name,
		Email:          input.Email,
		IsActive:       true,
		HashedPassword: hashed,
	}
	if staff.StaffCode == nil || *staff.StaffCode == "" {
		code := "ST-" + utils.GenerateRandomString(6)
		staff.StaffCode = &code
	}

	tx := s.db.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return nil, fmt.Errorf("begin staff create: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var count int64
	if err := tx.Model(&models.Staff{}).Count(&count).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("count staffs: %w", err)
	}

	if count == 0 {
		if s.cfg.BootstrapCode == "" {
			tx.Rollback()
			return nil, ErrMisconfigured
		}
		if bootstrapCode != s.cfg.BootstrapCode {
			tx.Rollback()
			return nil, ErrForbidden
		}
	} else if caller == nil {
		tx.Rollback()
		return nil, ErrUnauthenticated
	}

	if err := tx.Create(&staff).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create staff: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit staff: %w", err)
	}

	return &staff, nil
}

// ListStaffs returns every account ordered by id.
func (s *AuthService) ListStaffs() ([]models.Staff, error) {
	var staffs []models.Staff
	if err := s.db.Order("id").Find(&staffs).Error; err != nil {
		return nil, fmt.Errorf("list staffs: %w", err)
	}
	return staffs, nil
}

func identityOf(staff *models.Staff) *models.Identity {
	return &models.Identity{
		ID:    staff.ID,
		Name:  staff.Name,
		Email: staff.Email,
		Role:  "staff",
	}
}
