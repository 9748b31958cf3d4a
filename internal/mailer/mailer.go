// Package mailer delivers notification email over SMTP. Delivery is always
// best-effort; callers treat errors as advisory.
package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/config"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds an SMTP mailer from config, or returns nil when SMTP is not
// configured (nil disables delivery at the notify layer).
func New(cfg *config.Config) *Mailer {
	if !cfg.MailEnabled() {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
