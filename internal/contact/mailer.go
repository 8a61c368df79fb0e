// Package contact delivers the portfolio contact form by SMTP.
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Config is the outgoing mail setup.
type Config struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Message is one contact form submission.
type Message struct {
	Name    string
	Email   string
	Message string
}

// Validate checks the form fields a visitor filled in.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if strings.TrimSpace(m.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends contact messages.
type Mailer struct {
	cfg  Config
	log  *zap.Logger
	send sendFunc
}

func NewMailer(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Pass != ""
}

func (m *Mailer) Send(msg Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, compose(m.cfg, msg)); err != nil {
		m.log.Error("sending contact email", zap.Error(err))
		return fmt.Errorf("sending mail: %w", err)
	}

	m.log.Info("contact email sent", zap.String("name", msg.Name))
	return nil
}

// headerSafe strips line breaks so form input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func compose(cfg Config, msg Message) []byte {
	name := headerSafe(msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, msg.Email, msg.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: Portfolio Contact: " + name + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
