// Package mail delivers valuation reports over SMTP.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Settings is the SMTP configuration for report delivery.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// Sender delivers report emails through one SMTP account.
type Sender struct {
	settings Settings
	dial     func(msg *gomail.Message) error
}

// NewSender returns a Sender for the given SMTP settings.
func NewSender(s Settings) *Sender {
	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return &Sender{settings: s, dial: func(msg *gomail.Message) error { return d.DialAndSend(msg) }}
}

// Send delivers a report as a multipart message: the plain-text body for
// clients that cannot display HTML, with the HTML body as the preferred
// alternative. The html part may be empty for text-only reports.
func (s *Sender) Send(subject, text, html string) error {
	if s.settings.From == "" || len(s.settings.To) == 0 {
		return fmt.Errorf("mail: from and to addresses are required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.settings.From)
	m.SetHeader("To", s.settings.To...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	if html != "" {
		m.AddAlternative("text/html", html)
	}

	if err := s.dial(m); err != nil {
		return fmt.Errorf("mail: sending %q to %v: %w", subject, s.settings.To, err)
	}
	return nil
}
