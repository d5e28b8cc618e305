// services/digest_service.go
package services

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"rebeauty-backend/models"
	"rebeauty-backend/utils"
)

// DigestService summarizes overdue purchase follow-ups once a day so staff
// can see which segments need attention. It reads only; marking a follow-up
// as sent stays a manual action.
type DigestService struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewDigestService(db *gorm.DB, logger *slog.Logger) *DigestService {
	return &DigestService{db: db, logger: logger, now: time.Now}
}

// StartScheduler runs the digest every day at 9 AM.
func (s *DigestService) StartScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", s.RunDaily); err != nil {
		s.logger.Error("follow-up digest schedule failed", "error", err)
		return c
	}
	c.Start()
	s.logger.Info("follow-up digest scheduler started")
	return c
}

// RunDaily logs, per category, how many follow-ups are due and unsent for
// contactable customers.
func (s *DigestService) RunDaily() {
	today := utils.BeginningOfDay(s.now())

	for category := range models.FollowUpDays {
		count, err := s.dueCount(category, today)
		if err != nil {
			s.logger.Error("follow-up digest query failed", "segment", category, "error", err)
			continue
		}
		s.logger.Info("follow-up digest", "segment", category, "due_unsent", count)
	}
}

func (s *DigestService) dueCount(category string, today time.Time) (int64, error) {
	var count int64
	err := s.db.Table("visit_items").
		Joins("JOIN visits ON visits.id = visit_items.visit_id").
		Joins("JOIN customers ON customers.id = visits.customer_id").
		Where("visit_items.category = ?", category).
		Where("visit_items.follow_due_date <= ?", today).
		Where("visit_items.follow_sent_at IS NULL").
		Where("customers.email IS NOT NULL AND customers.email <> ''").
		Where("customers.email_opt_in = ?", true).
		Count(&count).Error
	return count, err
}
