package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"brokerkit/internal/config"
	"brokerkit/internal/utils/logger"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// Mailer delivers rendered campaigns over SMTP with PLAIN auth.
type Mailer struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: logger.New("mailer"),
	}
}

// Send builds a multipart/alternative message from the render result
// and submits it via STARTTLS.
func (m *Mailer) Send(to string, result *RenderResult) error {
	msg, err := m.buildMessage(to, result)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth sasl.Client
	if m.cfg.Username != "" {
		auth = sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, bytes.NewReader(msg)); err != nil {
		return m.log.Error("SMTP delivery to "+to+" failed: %v", err)
	}

	m.log.Success("Delivered %q to %s", result.Subject, to)
	return nil
}

func (m *Mailer) buildMessage(to string, result *RenderResult) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	var headers strings.Builder
	fmt.Fprintf(&headers, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From)
	fmt.Fprintf(&headers, "To: %s\r\n", to)
	fmt.Fprintf(&headers, "Subject: %s\r\n", result.Subject)
	fmt.Fprintf(&headers, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&headers, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&headers, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	if result.Text != "" {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/plain; charset=utf-8"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(result.Text)); err != nil {
			return nil, err
		}
	}

	if result.HTML != "" {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/html; charset=utf-8"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(result.HTML)); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return append([]byte(headers.String()), buf.Bytes()...), nil
}
