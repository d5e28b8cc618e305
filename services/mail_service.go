// services/mail_service.go
package services

import (
	"log/slog"

	"rebeauty-backend/models"
)

// Mailer delivers a message to a set of recipients. Real delivery lives
// outside this system; the default implementation only logs.
type Mailer interface {
	Send(subject, body string, recipients []string) error
}

// LogMailer writes each send to the structured log and delivers nothing.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(subject, body string, recipients []string) error {
	m.logger.Info("email dispatch (dummy)",
		"subject", subject,
		"recipients", len(recipients),
		"body_bytes", len(body),
	)
	return nil
}

// MailService handles the test/bulk dispatch endpoints. Both report the
// number of intended recipients; neither performs real delivery.
type MailService struct {
	mailer Mailer
	logger *slog.Logger
}

func NewMailService(mailer Mailer, logger *slog.Logger) *MailService {
	return &MailService{mailer: mailer, logger: logger}
}

// SendTest dispatches a single test message addressed to the caller.
func (s *MailService) SendTest(caller *models.Identity, subject, body string) (int, error) {
	s.logger.Info("test email requested", "by", caller.Label(), "staff_id", caller.ID)
	if err := s.mailer.Send(subject, body, []string{caller.Email}); err != nil {
		return 0, err
	}
	return 1, nil
}

// SendBulk dispatches one message per selected customer id and returns the
// intended recipient count.
func (s *MailService) SendBulk(caller *models.Identity, subject, body string, customerIDs []uint) (int, error) {
	s.logger.Info("bulk email requested",
		"by", caller.Label(),
		"staff_id", caller.ID,
		"customers", len(customerIDs),
	)
	recipients := make([]string, len(customerIDs))
	if err := s.mailer.Send(subject, body, recipients); err != nil {
		return 0, err
	}
	return len(customerIDs), nil
}
