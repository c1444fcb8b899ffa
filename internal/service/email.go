package service

import (
	"context"
	"fmt"

	"elira-backend/internal/logger"
	"elira-backend/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

func NewEmailService(apiKey, fromEmail, fromName string, enabled bool) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
	}
}

func (s *sendGridEmailService) SendPurchaseConfirmation(ctx context.Context, toEmail, toName, orgName, masterclassTitle string, priceCents, enrolledCount int32) error {
	if !s.enabled {
		logger.Debug("Email disabled, skipping purchase confirmation", "to", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Purchase confirmed: %s", masterclassTitle)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour purchase of %q for %s is confirmed.\n\nPrice: %s\nEmployees enrolled: %d\n\nBest regards,\nThe Elira Team",
		toName, masterclassTitle, orgName, utils.FormatCents(priceCents), enrolledCount)

	return s.send(toEmail, toName, subject, plainText)
}

func (s *sendGridEmailService) send(toEmail, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "to", toEmail)
	return nil
}
