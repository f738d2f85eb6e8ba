package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"behaviorbank-backend/internal/domain"
)

// emailService sends household notifications to the configured parent
// mailbox. Children authenticate with PINs and have no addresses of
// their own.
type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	adminTo  string
}

func NewEmailService(host string, port int, username, password, from, adminTo string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		adminTo:  adminTo,
	}
}

func (s *emailService) SendWithdrawalDecisionNotice(ctx context.Context, childName string, amount float64, status domain.WithdrawalStatus, notes string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminTo)
	m.SetHeader("Subject", fmt.Sprintf("Withdrawal %s for %s", status, childName))

	body := fmt.Sprintf("The withdrawal request of %.2f for %s has been %s.", amount, childName, status)
	if notes != "" {
		body += fmt.Sprintf("\n\nNotes: %s", notes)
	}
	body += "\n\nBehavior Bank"
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendPendingWithdrawalReminder(ctx context.Context, pendingCount int32) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminTo)
	m.SetHeader("Subject", "Withdrawal requests awaiting review")

	body := fmt.Sprintf("There are %d withdrawal request(s) waiting for approval.\n\nBehavior Bank", pendingCount)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}
