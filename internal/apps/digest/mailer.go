package digest

import (
	"errors"

	"github.com/humanos-app/humanos-backend/internal/config"
	"gopkg.in/gomail.v2"
)

var ErrMailerDisabled = errors.New("mail delivery is not configured")

// Mailer sends HTML mail over SMTP. With no SMTP host configured it stays
// disabled and every send fails with ErrMailerDisabled.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{from: cfg.SMTPFrom}
	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

func (m *Mailer) Send(to, subject, html string) error {
	if m.dialer == nil {
		return ErrMailerDisabled
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	return m.dialer.DialAndSend(msg)
}
