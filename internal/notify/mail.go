// Package notify sends e-mail about new contact messages.
package notify

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"realty_portal/internal/domain"
)

// Email is one plain-text message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers e-mail.
type Sender interface {
	Send(e Email) error
}

// MailSender delivers through an SMTP server.
type MailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailSender(host string, port int, user, password, from string) *MailSender {
	return &MailSender{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

func (s *MailSender) Send(e Email) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", e.Subject)
	m.SetBody("text/plain", e.Body)
	return s.dialer.DialAndSend(m)
}

// ContactNotifier tells the operator about a new message and acknowledges the sender.
type ContactNotifier struct {
	sender    Sender
	operator  string
	signature string
}

func NewContactNotifier(sender Sender, operator, signature string) *ContactNotifier {
	return &ContactNotifier{sender: sender, operator: operator, signature: signature}
}

// Notify attempts both mails; a failed operator mail does not skip the acknowledgement.
func (n *ContactNotifier) Notify(msg *domain.ContactMessage) error {
	var errs []error
	if err := n.sender.Send(OperatorEmail(n.operator, msg)); err != nil {
		errs = append(errs, fmt.Errorf("operator notification: %w", err))
	}
	if err := n.sender.Send(AcknowledgementEmail(msg, n.signature)); err != nil {
		errs = append(errs, fmt.Errorf("acknowledgement: %w", err))
	}
	return errors.Join(errs...)
}

// OperatorEmail summarises a contact message for the site operator.
func OperatorEmail(operator string, msg *domain.ContactMessage) Email {
	phone := "N/A"
	if msg.Phone != nil && *msg.Phone != "" {
		phone = *msg.Phone
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	fmt.Fprintf(&b, "Phone: %s\n", phone)
	fmt.Fprintf(&b, "Subject: %s\n\n", msg.Subject)
	fmt.Fprintf(&b, "Message:\n%s", msg.Message)
	return Email{
		To:      operator,
		Subject: "New Contact Message from " + msg.Name,
		Body:    b.String(),
	}
}

// AcknowledgementEmail confirms receipt to the sender and quotes their message.
func AcknowledgementEmail(msg *domain.ContactMessage, signature string) Email {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", msg.Name)
	b.WriteString("Thank you for reaching out to us. We've received your message and our team will get back to you soon.\n\n")
	b.WriteString("Here's a copy of your message:\n")
	fmt.Fprintf(&b, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(&b, "Message: %s\n\n", msg.Message)
	fmt.Fprintf(&b, "Best regards,\n%s", signature)
	return Email{
		To:      msg.Email,
		Subject: "We've received your message",
		Body:    b.String(),
	}
}
