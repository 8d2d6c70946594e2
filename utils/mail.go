package utils

import (
	"bytes"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrMailNotConfigured = errors.New("email service not configured")

type MailConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
	// ContactTo receives contact form submissions. Defaults to Username.
	ContactTo string
	StoreName string
}

func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

type Mailer struct {
	cfg  MailConfig
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.ContactTo == "" {
		cfg.ContactTo = cfg.Username
	}
	if cfg.StoreName == "" {
		cfg.StoreName = "Store"
	}
	m := &Mailer{cfg: cfg}
	m.send = smtp.SendMail
	if cfg.Secure {
		m.send = m.sendTLS
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Enabled()
}

type EmailData struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	StoreName string
}

func (d EmailData) Lines() []string {
	return strings.Split(d.Message, "\n")
}

// SendEmail renders the named template with data and sends it as HTML.
func (m *Mailer) SendEmail(emailTo, emailSubject string, data EmailData, templateName string, replyTo string) error {
	if !m.Enabled() {
		return ErrMailNotConfigured
	}
	if data.StoreName == "" {
		data.StoreName = m.cfg.StoreName
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	var headers strings.Builder
	fmt.Fprintf(&headers, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", m.cfg.From, emailTo, headerSafe(emailSubject))
	if replyTo != "" {
		fmt.Fprintf(&headers, "Reply-To: %s\r\n", headerSafe(replyTo))
	}
	headers.WriteString("MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n")
	message := headers.String() + body.String()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendContact forwards a contact form to the store and confirms receipt to
// the sender.
func (m *Mailer) SendContact(data EmailData) error {
	if !m.Enabled() {
		return ErrMailNotConfigured
	}
	if err := m.SendEmail(m.cfg.ContactTo, "New Contact Form Submission: "+data.Subject, data, "contactAdmin.html", data.Email); err != nil {
		return err
	}
	return m.SendEmail(data.Email, "We received your message", data, "contactConfirmation.html", "")
}

// sendTLS is smtp.SendMail over an implicit TLS connection (port 465).
func (m *Mailer) sendTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
