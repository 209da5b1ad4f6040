package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/alvinking254/dircap/config"
)

// sessionTimeout bounds the dial and every subsequent read/write on the
// SMTP connection.
const sessionTimeout = 30 * time.Second

// SMTPNotifier implements domain.INotifier over a single SMTP session.
//
// The transport mode follows two independent switches: UseSSL opens an
// implicit TLS session (encrypted before any protocol byte, port 465
// convention), UseTLS upgrades a plaintext session via STARTTLS (port
// 587 convention). Neither is forced; both may be off, in which case a
// plain unencrypted session is attempted.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	UseSSL   bool
	UseTLS   bool
}

// NewSMTPNotifier creates a new SMTPNotifier from a validated config.
func NewSMTPNotifier(cfg config.EmailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		To:       cfg.To,
		UseSSL:   cfg.UseSSL,
		UseTLS:   cfg.UseTLS,
	}
}

// Send implements domain.INotifier. The session is closed on every exit
// path, success or failure.
func (n *SMTPNotifier) Send(ctx context.Context, subject, body string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	client, conn, err := n.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	// The deadline is pushed out before every protocol step, so each
	// network call gets the full timeout like a per-call socket timeout.
	touch := func() {
		conn.SetDeadline(time.Now().Add(sessionTimeout))
	}

	if !n.UseSSL && n.UseTLS {
		// StartTLS re-issues EHLO after the upgrade, as the protocol
		// requires.
		touch()
		if err := client.StartTLS(&tls.Config{ServerName: n.Host}); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	auth := smtp.PlainAuth("", n.Username, n.Password, n.Host)
	touch()
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("auth failed: %w", err)
	}

	touch()
	if err := client.Mail(n.From); err != nil {
		return fmt.Errorf("mail from %s rejected: %w", n.From, err)
	}
	touch()
	if err := client.Rcpt(n.To); err != nil {
		return fmt.Errorf("rcpt to %s rejected: %w", n.To, err)
	}
	touch()
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data command failed: %w", err)
	}
	touch()
	if _, err := w.Write(formatMessage(n.From, n.To, subject, body)); err != nil {
		w.Close()
		return fmt.Errorf("message write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message not accepted: %w", err)
	}

	touch()
	return client.Quit()
}

// dial opens the SMTP session, encrypted from the first byte when UseSSL
// is set and plaintext otherwise. The connection is returned alongside
// the client so the caller can keep refreshing its deadline.
func (n *SMTPNotifier) dial() (*smtp.Client, net.Conn, error) {
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	dialer := &net.Dialer{Timeout: sessionTimeout}

	var conn net.Conn
	var err error
	if n.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: n.Host})
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s failed: %w", addr, err)
	}

	if err := conn.SetDeadline(time.Now().Add(sessionTimeout)); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("set deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, n.Host)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("smtp handshake with %s failed: %w", addr, err)
	}
	return client, conn, nil
}

// formatMessage builds the minimal plaintext message with CRLF line
// endings as SMTP requires.
func formatMessage(from, to, subject, body string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + strings.ReplaceAll(body, "\n", "\r\n")
	return []byte(msg)
}
