package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// Mailer delivers a composed message to an address. Tests inject a stub that
// records calls without hitting the network.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through an authenticated SMTP submission endpoint
// (Gmail by default via config).
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
}

// NewSMTPMailer creates an SMTP mailer. The user doubles as the From address.
func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass}
}

// Send delivers one message. The context bounds only message assembly; the
// SMTP dialogue itself relies on library timeouts.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.user == "" || m.pass == "" {
		return fmt.Errorf("mailer not configured: EMAIL_USER and EMAIL_PASS required")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.user)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := sasl.NewPlainClient("", m.user, m.pass)
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, strings.NewReader(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
