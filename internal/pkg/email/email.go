package email

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Service defines the interface for email operations
type Service interface {
	SendVerificationEmail(toEmail, toName, token string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	// BaseURL is the public base URL used to build verification links
	BaseURL string
}

type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new SMTP-backed email service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{config: config, logger: logger}
}

// SendVerificationEmail sends an email with a verification link
func (s *smtpService) SendVerificationEmail(toEmail, toName, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email/%s", s.config.BaseURL, token)

	// Without credentials the link is only logged. Useful for local runs.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("verificationURL", verificationURL).
			Msg("SMTP credentials not configured - verification email not sent")
		return nil
	}

	from := s.config.FromEmail
	if from == "" {
		from = s.config.Username
	}

	subject := "Verify your email address"
	body := fmt.Sprintf(`<h3>Welcome %s!</h3>
<p>Please verify your email address by clicking the link below:</p>
<a href="%s">Verify Email</a>`, toName, verificationURL)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, from, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Msg("Verification email sent")
	return nil
}
