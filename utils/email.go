package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailService sends transactional email through SendGrid. When no API key
// is configured the service is disabled and sends become no-ops, so local
// development does not need SendGrid credentials.
type EmailService struct {
	client *sendgrid.Client
	sender string
	logger *zap.Logger
}

// NewEmailService reads SENDGRID_API_KEY and EMAIL_SENDER from the
// environment.
func NewEmailService(logger *zap.Logger) *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	svc := &EmailService{
		sender: os.Getenv("EMAIL_SENDER"),
		logger: logger,
	}
	if apiKey == "" {
		logger.Warn("SENDGRID_API_KEY not set, email sending disabled")
		return svc
	}
	svc.client = sendgrid.NewSendClient(apiKey)
	return svc
}

// SendEmail sends a single HTML email.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		es.logger.Debug("email disabled, skipping send", zap.String("to", toEmail))
		return nil
	}
	from := mail.NewEmail("", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmationEmail notifies the customer that their order was
// placed.
func (es *EmailService) SendOrderConfirmationEmail(toEmail, customerName, orderID string, totalAmount float64) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed and is now pending.<br><br>Total Amount: <strong>$%.2f</strong><br><br>Thank you for shopping with us!",
		customerName, orderID, totalAmount,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
