package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/config"
)

func reminder() OverdueReminderData {
	return OverdueReminderData{
		LoanID:        3,
		BorrowerName:  "Ana Pérez",
		BorrowerEmail: "ana@example.com",
		BookTitle:     "Clean Code",
		DueDate:       "2025-01-15",
		DaysOverdue:   5,
	}
}

func Test_NewEmailService_PicksProvider(t *testing.T) {
	assert.IsType(t, &logEmailService{}, NewEmailService(config.EmailConfig{Provider: config.EmailProviderLog}))
	assert.IsType(t, &smtpEmailService{}, NewEmailService(config.EmailConfig{Provider: config.EmailProviderSMTP, SMTPHost: "mail", SMTPPort: "25"}))
}

func Test_OverdueReminder_Content(t *testing.T) {
	// act
	req := overdueReminder(reminder())

	// assert
	assert.Equal(t, []string{"ana@example.com"}, req.To)
	assert.Equal(t, "Préstamo vencido: Clean Code", req.Subject)
	assert.Contains(t, req.Body, "2025-01-15")
	assert.Contains(t, req.Body, "5 día(s)")
}

func Test_BuildMessage_Headers(t *testing.T) {
	// act
	msg := string(buildMessage("lib@example.com", EmailRequest{
		To:      []string{"a@example.com", "b@example.com"},
		Cc:      []string{"c@example.com"},
		Subject: "Hola",
		Body:    "line1\nline2",
	}))

	// assert
	assert.True(t, strings.HasPrefix(msg, "From: lib@example.com\r\nTo: a@example.com, b@example.com\r\nCc: c@example.com\r\n"))
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\nline1\r\nline2")
}

func Test_SMTPEmailService_SendOverdueReminder(t *testing.T) {
	// setup
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	svc := &smtpEmailService{
		smtpAddr: "localhost:1025",
		smtpFrom: "lib@example.com",
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	// act
	err := svc.SendOverdueReminder(context.Background(), reminder())

	// assert
	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Equal(t, "lib@example.com", gotFrom)
	assert.Equal(t, []string{"ana@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Préstamo vencido: Clean Code")
}

func Test_SMTPEmailService_WrapsSendError(t *testing.T) {
	// setup
	svc := &smtpEmailService{
		smtpAddr: "localhost:1025",
		send: func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		},
	}

	// act
	err := svc.SendEmail(context.Background(), EmailRequest{To: []string{"x@example.com"}})

	// assert
	assert.EqualError(t, err, "failed to send email: connection refused")
}

func Test_SendEmail_NoRecipients(t *testing.T) {
	assert.ErrorIs(t, NewLogEmailService("x").SendEmail(context.Background(), EmailRequest{}), ErrNoRecipients)
	assert.ErrorIs(t, NewSMTPEmailService("h", "1", "x").SendEmail(context.Background(), EmailRequest{}), ErrNoRecipients)
}
