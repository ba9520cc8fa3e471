package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

const (
	smtpDialTimeout    = 30 * time.Second
	smtpSessionTimeout = 2 * time.Minute
)

// SMTPSender delivers messages through a plain SMTP relay, upgrading the
// connection with STARTTLS when the server offers it and authenticating with
// PLAIN when credentials are configured.
type SMTPSender struct {
	cfg Config
}

var _ mailqueue.Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender that relays through cfg.SMTPHost.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail != "" && !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}

	return &SMTPSender{cfg: cfg}, nil
}

// Send delivers one queued message over a fresh SMTP session. The context
// deadline, when tighter than the session timeout, bounds the whole exchange.
func (s *SMTPSender) Send(ctx context.Context, msg mailqueue.Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	data := s.buildMessage(msg, time.Now())

	addr := net.JoinHostPort(s.cfg.SMTPHost, strconv.Itoa(s.cfg.SMTPPort))
	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("dial %s: %w", addr, err))
	}
	defer conn.Close()

	deadline := time.Now().Add(smtpSessionTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("set deadline: %w", err))
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("new client: %w", err))
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConf := &tls.Config{
			ServerName: s.cfg.SMTPHost,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConf); err != nil {
			return errors.Join(ErrFailedToSendEmail, fmt.Errorf("starttls: %w", err))
		}
	}

	if s.cfg.SMTPUsername != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
			if err := client.Auth(auth); err != nil {
				return errors.Join(ErrFailedToSendEmail, fmt.Errorf("auth: %w", err))
			}
		}
	}

	if err := client.Mail(s.cfg.SenderEmail); err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("mail from: %w", err))
	}
	for _, rcpt := range msg.Recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return errors.Join(ErrFailedToSendEmail, fmt.Errorf("rcpt to %s: %w", rcpt, err))
		}
	}

	w, err := client.Data()
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("data start: %w", err))
	}
	if _, err := w.Write(data); err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("data write: %w", err))
	}
	if err := w.Close(); err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("data close: %w", err))
	}

	if err := client.Quit(); err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("quit: %w", err))
	}

	return nil
}

// buildMessage renders the message as a MIME document: multipart/alternative
// when both bodies are present (plain text first so limited clients fall back
// to it), a single part otherwise. Bodies are quoted-printable encoded.
func (s *SMTPSender) buildMessage(msg mailqueue.Message, now time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", s.cfg.SenderEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.Recipients, ", "))
	if s.cfg.SupportEmail != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", s.cfg.SupportEmail)
	}
	if msg.Subject != "" {
		fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	}
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		mw := multipart.NewWriter(&buf)
		fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
		writePart(mw, "text/plain; charset=utf-8", msg.TextBody)
		writePart(mw, "text/html; charset=utf-8", msg.HTMLBody)
		_ = mw.Close()
	case msg.HTMLBody != "":
		writeSinglePart(&buf, "text/html; charset=utf-8", msg.HTMLBody)
	default:
		writeSinglePart(&buf, "text/plain; charset=utf-8", msg.TextBody)
	}

	return buf.Bytes()
}

func writePart(mw *multipart.Writer, contentType, body string) {
	pw, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return
	}
	qp := quotedprintable.NewWriter(pw)
	_, _ = qp.Write([]byte(body))
	_ = qp.Close()
}

func writeSinglePart(buf *bytes.Buffer, contentType, body string) {
	fmt.Fprintf(buf, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(buf, "Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	qp := quotedprintable.NewWriter(buf)
	_, _ = qp.Write([]byte(body))
	_ = qp.Close()
}
