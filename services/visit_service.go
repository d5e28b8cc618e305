// services/visit_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rebeauty-backend/models"
	"rebeauty-backend/utils"
)

// VisitService creates, updates, and deletes a visit together with its line
// items as one atomic unit, and keeps Customer.LastVisitDate consistent with
// the remaining visits on every mutation path.
type VisitService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db, now: time.Now}
}

// VisitItemInput is one purchased category line in a create/update payload.
type VisitItemInput struct {
	Category    string  `json:"category" binding:"required"`
	ProductName *string `json:"product_name"`
	Note        *string `json:"note"`
}

// CreateVisitInput defines the expected JSON structure for creating a visit.
type CreateVisitInput struct {
	CustomerID uint             `json:"customer_id" binding:"required"`
	VisitDate  time.Time        `json:"visit_date" binding:"required"`
	Memo       *string          `json:"memo"`
	StaffID    *uint            `json:"staff_id"`
	Items      []VisitItemInput `json:"items"`
}

// UpdateVisitInput replaces the header fields and the entire item set.
// The customer is never reassigned on update.
type UpdateVisitInput struct {
	VisitDate time.Time        `json:"visit_date" binding:"required"`
	Memo      *string          `json:"memo"`
	StaffID   *uint            `json:"staff_id"`
	Items     []VisitItemInput `json:"items"`
}

// CreateVisit persists the header and its items in one transaction. Each
// item's follow-up due date is fixed here from the category offset table.
func (s *VisitService) CreateVisit(input CreateVisitInput) (*models.Visit, error) {
	var customer models.Customer
	if err := s.db.First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	visit := models.Visit{
		CustomerID: input.CustomerID,
		VisitDate:  input.VisitDate,
		Memo:       input.Memo,
		StaffID:    input.StaffID,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&visit).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create visit: %w", err)
	}

	if err := s.insertItems(tx, visit.ID, input.VisitDate, input.Items); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.recomputeLastVisit(tx, input.CustomerID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit visit: %w", err)
	}

	return s.getVisit(visit.ID)
}

// UpdateVisit rewrites the header and unconditionally replaces the item set.
// Prior follow_sent_at state is lost by the full-replacement contract.
func (s *VisitService) UpdateVisit(id uint, input UpdateVisitInput) (*models.Visit, error) {
	var visit models.Visit
	if err := s.db.First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	visit.VisitDate = input.VisitDate
	visit.Memo = input.Memo
	visit.StaffID = input.StaffID
	if err := tx.Save(&visit).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update visit: %w", err)
	}

	if err := tx.Where("visit_id = ?", id).Delete(&models.VisitItem{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("clear visit items: %w", err)
	}

	if err := s.insertItems(tx, visit.ID, input.VisitDate, input.Items); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.recomputeLastVisit(tx, visit.CustomerID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit visit: %w", err)
	}

	return s.getVisit(visit.ID)
}

// DeleteVisit removes the visit and its items. A missing visit returns
// (false, nil), not an error.
func (s *VisitService) DeleteVisit(id uint) (bool, error) {
	var visit models.Visit
	if err := s.db.First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get visit: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("visit_id = ?", id).Delete(&models.VisitItem{}).Error; err != nil {
		tx.Rollback()
		return false, fmt.Errorf("delete visit items: %w", err)
	}

	if err := tx.Delete(&visit).Error; err != nil {
		tx.Rollback()
		return false, fmt.Errorf("delete visit: %w", err)
	}

	if err := s.recomputeLastVisit(tx, visit.CustomerID); err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return true, nil
}

// VisitsByCustomer returns the customer's visits with items, newest first.
func (s *VisitService) VisitsByCustomer(customerID uint) ([]models.Visit, error) {
	var visits []models.Visit
	if err := s.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("visit_date DESC, id DESC").
		Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

// MarkFollowSent stamps the follow-up sent time on an item. Calling it again
// is a no-op; a missing item returns (nil, nil).
func (s *VisitService) MarkFollowSent(itemID uint) (*models.VisitItem, error) {
	var item models.VisitItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit item: %w", err)
	}

	if item.FollowSentAt == nil {
		sentAt := s.now()
		item.FollowSentAt = &sentAt
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("mark follow sent: %w", err)
		}
	}

	return &item, nil
}

// TodayVisitCount counts visits dated today.
func (s *VisitService) TodayVisitCount() (int64, error) {
	start := utils.BeginningOfDay(s.now())
	end := start.AddDate(0, 0, 1)

	var count int64
	if err := s.db.Model(&models.Visit{}).
		Where("visit_date >= ? AND visit_date < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count today's visits: %w", err)
	}
	return count, nil
}

func (s *VisitService) insertItems(tx *gorm.DB, visitID uint, visitDate time.Time, items []VisitItemInput) error {
	for _, itemIn := range items {
		item := models.VisitItem{
			VisitID:       visitID,
			Category:      itemIn.Category,
			ProductName:   itemIn.ProductName,
			Note:          itemIn.Note,
			FollowDueDate: models.FollowDueDate(visitDate, itemIn.Category),
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create visit item: %w", err)
		}
	}
	return nil
}

// recomputeLastVisit overwrites the customer's derived last_visit_date with
// the maximum visit_date across all of their remaining visits.
func (s *VisitService) recomputeLastVisit(tx *gorm.DB, customerID uint) error {
	row := tx.Model(&models.Visit{}).
		Where("customer_id = ?", customerID).
		Select("MAX(visit_date)").
		Row()

	var latest models.Date
	if err := row.Scan(&latest); err != nil {
		return fmt.Errorf("recompute last visit: %w", err)
	}

	var lastVisit *time.Time
	if !latest.Time.IsZero() {
		lastVisit = &latest.Time
	}

	if err := tx.Model(&models.Customer{}).
		Where("id = ?", customerID).
		Update("last_visit_date", lastVisit).Error; err != nil {
		return fmt.Errorf("store last visit: %w", err)
	}
	return nil
}

func (s *VisitService) getVisit(id uint) (*models.Visit, error) {
	var visit models.Visit
	if err := s.db.Preload("Items").First(&visit, id).Error; err != nil {
		return nil, fmt.Errorf("reload visit: %w", err)
	}
	return &visit, nil
}
