package notification

import (
	"fmt"

	"carematch/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text dispatch notices over SMTP.
type Mailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewMailerFromConfig builds a Mailer from the loaded configuration, or nil
// when no SMTP host is configured.
func NewMailerFromConfig() *Mailer {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.User, m.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
