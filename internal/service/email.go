package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"volunteerhub-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendOrganizerStatusNotification(ctx context.Context, email, organizationName, status, reason string) error {
	subject := fmt.Sprintf("Organizer Application Update - %s", organizationName)
	body := fmt.Sprintf("Hello,\n\nThe organizer application for %q has been updated to: %s.", organizationName, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe VolunteerHub Team"
	return s.send(email, organizationName, subject, body)
}

func (s *emailService) SendApplicationStatusNotification(ctx context.Context, email, name, postingTitle, status string) error {
	subject := fmt.Sprintf("Application Update - %s", postingTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour application for %q has been %s.\n\nBest regards,\nThe VolunteerHub Team",
		name, postingTitle, status)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendAdminNotification(ctx context.Context, email, subject, message string) error {
	return s.send(email, "", subject, message)
}
