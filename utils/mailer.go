package utils

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/nordbooks/leadtrack/models"
)

// Mailer sends lead notification emails over SMTP with implicit TLS.
// A nil Mailer is valid and sends nothing.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
	To       string
}

func NewMailer(host, port, from, password, to string) *Mailer {
	return &Mailer{Host: host, Port: port, From: from, Password: password, To: to}
}

// NotifyNewLead emails a short summary of a freshly submitted lead to the
// configured recipient. Best effort: the caller logs failures and moves on.
func (m *Mailer) NotifyNewLead(lead models.Lead) error {
	if m == nil {
		return nil
	}

	subject := fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Company)
	body := strings.Join([]string{
		"A new lead just came in.",
		"",
		"Name: " + lead.Name,
		"Company: " + lead.Company,
		"Email: " + lead.Email,
		"Phone: " + lead.Phone,
		"Service: " + lead.Challenge,
		"Revenue: " + lead.Revenue,
		"Urgency: " + lead.Urgency,
		"Source: " + lead.UTMSource + " / " + lead.UTMCampaign,
		"Landing page: " + lead.LandingPage,
	}, "\r\n")

	return m.send(subject, body)
}

func (m *Mailer) send(subject, body string) error {
	from := mail.Address{Name: "Leadtrack", Address: m.From}

	tlsConfig := &tls.Config{
		ServerName: m.Host,
	}

	// Connect to the SMTP server
	conn, err := tls.Dial("tcp", m.Host+":"+m.Port, tlsConfig)
	if err != nil {
		return fmt.Errorf("smtp connect: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err = client.Mail(from.Address); err != nil {
		return fmt.Errorf("smtp sender: %w", err)
	}
	if err = client.Rcpt(m.To); err != nil {
		return fmt.Errorf("smtp recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	defer writer.Close()

	header := make(map[string]string)
	header["From"] = from.String()
	header["To"] = m.To
	header["Subject"] = subject

	message := ""
	for k, v := range header {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	if _, err = writer.Write([]byte(message)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}

	return nil
}
