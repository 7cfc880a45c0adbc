package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/localmart/api/internal/config"
)

// Mailer delivers transactional mail (email OTP codes).
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewMailer builds a plain SMTP mailer. Auth is attached only when a
// username is configured, so local dev servers (MailHog) work without it.
func NewMailer(cfg *config.Config) Mailer {
	m := &mailer{
		addr: fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.SMTPFrom,
	}
	if cfg.SMTPUsername != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return m
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}
