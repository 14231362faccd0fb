package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-catalog/internal/config"
)

var ErrNoRecipients = errors.New("email has no recipients")

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
	SendOverdueReminder(ctx context.Context, data OverdueReminderData) error
}

// NewEmailService picks the sender named by cfg.Provider.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.Provider == config.EmailProviderSMTP {
		return NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.From)
	}
	return NewLogEmailService(cfg.From)
}

func overdueReminder(data OverdueReminderData) EmailRequest {
	subject := fmt.Sprintf("Préstamo vencido: %s", data.BookTitle)
	body := fmt.Sprintf(`Hola %s,

El libro "%s" debía devolverse el %s y lleva %d día(s) de retraso.

Por favor, devuélvalo en la biblioteca lo antes posible.

Biblioteca`, data.BorrowerName, data.BookTitle, data.DueDate, data.DaysOverdue)

	return EmailRequest{
		To:      []string{data.BorrowerEmail},
		Subject: subject,
		Body:    body,
	}
}

// buildMessage renders an RFC 5322 message with CRLF line endings.
func buildMessage(from string, req EmailRequest) []byte {
	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(req.To, ", "))
	if len(req.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(req.Cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", req.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	b.WriteString(strings.ReplaceAll(req.Body, "\n", "\r\n"))
	return []byte(b.String())
}
