// services/targeting_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"rebeauty-backend/models"
	"rebeauty-backend/utils"
)

// Mail campaign types accepted by MailTargets.
const (
	MailTypeBirthday       = "birthday"
	MailTypeEvent          = "event"
	MailTypePurchaseFollow = "purchase_follow"
)

// DefaultWithinDays is the recency window for event/birthday targeting.
const DefaultWithinDays = 365

// MailTarget is one customer-level campaign candidate.
type MailTarget struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Birthday        *models.Date `json:"birthday"`
	LatestVisitDate models.Date  `json:"latest_visit_date" gorm:"column:latest_visit_date"`
}

// InactiveTarget is one purchase-follow candidate for a category segment.
type InactiveTarget struct {
	CustomerID    uint        `json:"customer_id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	LastVisitDate models.Date `json:"last_visit_date" gorm:"column:last_visit_date"`
	DaysSince     int         `json:"days_since" gorm:"-"`
	Segment       string      `json:"segment" gorm:"-"`
}

// TargetingService derives mailing-campaign candidate lists from visit
// history. It only reads; nothing here mutates the store.
type TargetingService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTargetingService(db *gorm.DB) *TargetingService {
	return &TargetingService{db: db, now: time.Now}
}

// EventTargets returns every customer whose most recent visit falls within
// withinDays of today, who has an email, and who is opted in. Customers with
// no visits at all are excluded by the join. Ordered by descending id.
func (s *TargetingService) EventTargets(withinDays int) ([]MailTarget, error) {
	rows, err := s.recentVisitors(withinDays)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BirthdayTargets narrows EventTargets to customers whose birthday month is
// the current calendar month. Only the month is checked, never the day.
func (s *TargetingService) BirthdayTargets(withinDays int) ([]MailTarget, error) {
	rows, err := s.recentVisitors(withinDays)
	if err != nil {
		return nil, err
	}

	thisMonth := s.now().Month()
	targets := make([]MailTarget, 0, len(rows))
	for _, row := range rows {
		if row.Birthday == nil || row.Birthday.Time.IsZero() {
			continue
		}
		if row.Birthday.Time.Month() == thisMonth {
			targets = append(targets, row)
		}
	}
	return targets, nil
}

// InactiveBySegment returns customers whose last visit containing an item of
// the given category is at least the category threshold ago. Unrecognized
// segments return an empty list, not an error. Ordered by last qualifying
// visit, oldest first.
func (s *TargetingService) InactiveBySegment(segment string) ([]InactiveTarget, error) {
	if !models.KnownSegment(segment) {
		return []InactiveTarget{}, nil
	}

	today := s.now()
	cutoff := today.AddDate(0, 0, -models.FollowUpDays[segment])

	var rows []InactiveTarget
	err := s.db.Table("customers").
		Select("customers.id AS customer_id, customers.name, customers.email, MAX(visits.visit_date) AS last_visit_date").
		Joins("JOIN visits ON visits.customer_id = customers.id").
		Joins("JOIN visit_items ON visit_items.visit_id = visits.id").
		Where("customers.email IS NOT NULL AND customers.email <> ''").
		Where("customers.email_opt_in = ?", true).
		Where("visit_items.category = ?", segment).
		Group("customers.id, customers.name, customers.email").
		Having("MAX(visits.visit_date) <= ?", cutoff).
		Order("MAX(visits.visit_date) ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query inactive customers: %w", err)
	}

	targets := make([]InactiveTarget, 0, len(rows))
	for _, row := range rows {
		// The join guarantees a visit date, but drop the row rather than
		// report a bogus zero date if it is ever absent.
		if row.LastVisitDate.Time.IsZero() {
			continue
		}
		row.DaysSince = utils.DaysBetween(row.LastVisitDate.Time, today)
		row.Segment = segment
		targets = append(targets, row)
	}
	return targets, nil
}

// MailTargets routes customer-level campaign types to their queries. The
// purchase_follow type is deliberately refused here: item-level follow-up
// goes through InactiveBySegment instead.
func (s *TargetingService) MailTargets(mailType string, withinDays int) ([]MailTarget, error) {
	switch mailType {
	case MailTypeEvent:
		return s.EventTargets(withinDays)
	case MailTypeBirthday:
		return s.BirthdayTargets(withinDays)
	default:
		return nil, ErrUnsupportedMailType
	}
}

// recentVisitors joins customers against their latest visit date and applies
// the shared recency/email/opt-in base filter.
func (s *TargetingService) recentVisitors(withinDays int) ([]MailTarget, error) {
	if withinDays <= 0 {
		withinDays = DefaultWithinDays
	}
	since := s.now().AddDate(0, 0, -withinDays)

	latestVisits := s.db.Model(&models.Visit{}).
		Select("customer_id, MAX(visit_date) AS latest_visit_date").
		Group("customer_id")

	rows := make([]MailTarget, 0)
	err := s.db.Table("customers").
		Select("customers.id, customers.name, customers.email, customers.birthday, lv.latest_visit_date").
		Joins("JOIN (?) lv ON lv.customer_id = customers.id", latestVisits).
		Where("lv.latest_visit_date >= ?", since).
		Where("customers.email IS NOT NULL AND customers.email <> ''").
		Where("customers.email_opt_in = ?", true).
		Order("customers.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query recent visitors: %w", err)
	}
	return rows, nil
}
