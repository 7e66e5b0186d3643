package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPConfig holds the relay endpoint and credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Addr returns host:port.
func (c SMTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports ErrNotConfigured when any field is missing.
func (c SMTPConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "host")
	}
	if c.Port <= 0 {
		missing = append(missing, "port")
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends through an SMTP relay with PLAIN auth. net/smtp upgrades
// to STARTTLS whenever the server offers it, which the PLAIN mechanism
// requires for non-local hosts.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPSender returns a sender for cfg. Configuration is checked on every
// Send so a misconfigured relay fails the attempt, not the process.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// Send delivers msg. The context is only checked before dialing; net/smtp
// has no cancellation hook.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" || msg.To == "" {
		return fmt.Errorf("%w: sender and recipient are required", ErrNotConfigured)
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := s.sendMail(s.cfg.Addr(), auth, msg.From, []string{msg.To}, BuildMIME(msg)); err != nil {
		return fmt.Errorf("mailer: smtp send: %w", err)
	}
	return nil
}

// BuildMIME renders msg as an RFC 5322 message with an HTML body.
func BuildMIME(msg Message) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, "From", msg.From)
	writeHeader(&buf, "To", msg.To)
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", `text/html; charset="UTF-8"`)
	writeHeader(&buf, "Content-Transfer-Encoding", "8bit")
	buf.WriteString("\r\n")
	body := strings.ReplaceAll(msg.HTML, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	value = strings.NewReplacer("\r", "", "\n", "").Replace(value)
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}
