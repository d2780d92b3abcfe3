package mail

import (
	"bytes"
	"club-api/core/config"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Message struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers through an SMTP relay, upgrading with STARTTLS when offered.
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("mail: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, from, msg.To, Build(from, msg))
}

// Build renders msg as an RFC 5322 message.
func Build(from string, msg Message) []byte {
	contentType := "text/plain; charset=UTF-8"
	if msg.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n", contentType)
	b.WriteString(msg.Body)
	return b.Bytes()
}

// Render executes one of the embedded templates.
func Render(name string, data any) (string, error) {
	var b bytes.Buffer
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

type OTPData struct {
	Name    string
	OTPCode string
	Minutes int
}

type DigestItem struct {
	Time     string
	Name     string
	Type     string
	Location string
}

type DigestData struct {
	Name  string
	Date  string
	Items []DigestItem
}
