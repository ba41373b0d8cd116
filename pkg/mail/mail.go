// Package mail sends transactional email over SMTP.
package mail

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: s.cfg.Host}
	return d.DialAndSend(m)
}

// Nop drops every message.
type Nop struct{}

func (Nop) Send(string, string, string) error { return nil }

// New returns an SMTP sender, or Nop when no host is configured.
func New(cfg SMTPConfig) Sender {
	if cfg.Host == "" {
		return Nop{}
	}
	return NewSMTPSender(cfg)
}

// WelcomeHTML is the body of the signup welcome mail carrying the member's referral link.
func WelcomeHTML(name, referralURL string) string {
	if name == "" {
		name = "Member"
	}
	return fmt.Sprintf(`<p>Welcome to the Z2B Table Banquet, %s!</p>`+
		`<p>Invite others with your personal link:<br><a href="%s">%s</a></p>`,
		html.EscapeString(name), html.EscapeString(referralURL), html.EscapeString(referralURL))
}
