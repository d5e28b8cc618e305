// services/customer_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rebeauty-backend/models"
	"rebeauty-backend/utils"
)

const defaultSearchLimit = 50

// CustomerService owns customer records and their cascading lifecycle.
type CustomerService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db, now: time.Now}
}

// CreateCustomerInput defines the expected JSON structure for creating a customer.
type CreateCustomerInput struct {
	Name       string     `json:"name" binding:"required"`
	Kana       *string    `json:"kana"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email" binding:"omitempty,email"`
	Note       *string    `json:"note"`
	Birthday   *time.Time `json:"birthday"`
	EmailOptIn *bool      `json:"email_opt_in"`
}

// UpdateCustomerInput carries partial updates; nil means "leave unchanged".
type UpdateCustomerInput struct {
	Name       *string    `json:"name"`
	Kana       *string    `json:"kana"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email" binding:"omitempty,email"`
	Note       *string    `json:"note"`
	Birthday   *time.Time `json:"birthday"`
	EmailOptIn *bool      `json:"email_opt_in"`
}

func (s *CustomerService) Create(input CreateCustomerInput) (*models.Customer, error) {
	customer := models.Customer{
		Name:       input.Name,
		Kana:       input.Kana,
		Phone:      input.Phone,
		Email:      input.Email,
		Note:       input.Note,
		Birthday:   input.Birthday,
		EmailOptIn: true,
	}
	if input.EmailOptIn != nil {
		customer.EmailOptIn = *input.EmailOptIn
	}

	if err := s.db.Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &customer, nil
}

// List returns the newest customers first, optionally filtered by a
// case-insensitive substring match on name, kana, phone, or email.
func (s *CustomerService) List(q string, limit int) ([]models.Customer, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query := s.db.Model(&models.Customer{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(kana) LIKE LOWER(?) OR LOWER(phone) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			like, like, like, like,
		)
	}

	var customers []models.Customer
	if err := query.Order("id DESC").Limit(limit).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) Update(id uint, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Kana != nil {
		customer.Kana = input.Kana
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Note != nil {
		customer.Note = input.Note
	}
	if input.Birthday != nil {
		customer.Birthday = input.Birthday
	}
	if input.EmailOptIn != nil {
		customer.EmailOptIn = *input.EmailOptIn
	}

	if err := s.db.Save(customer).Error; err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Delete removes a customer together with every owned visit and visit item,
// as explicit statements inside one transaction.
func (s *CustomerService) Delete(id uint) error {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get customer: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("visit_id IN (?)",
		tx.Model(&models.Visit{}).Select("id").Where("customer_id = ?", id),
	).Delete(&models.VisitItem{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete visit items: %w", err)
	}

	if err := tx.Where("customer_id = ?", id).Delete(&models.Visit{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete visits: %w", err)
	}

	if err := tx.Delete(&customer).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete customer: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// MonthlyNewCustomerCount counts customers created since the first of the
// current month.
func (s *CustomerService) MonthlyNewCustomerCount() (int64, error) {
	firstDay := utils.FirstOfMonth(s.now())

	var count int64
	if err := s.db.Model(&models.Customer{}).
		Where("created_at >= ?", firstDay).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count new customers: %w", err)
	}
	return count, nil
}
