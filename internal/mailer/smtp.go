package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	gomail "gopkg.in/mail.v2"
)

type SMTPMailer struct {
	fromEmail string
	dialer    *gomail.Dialer
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) *SMTPMailer {
	dialer := gomail.NewDialer(host, port, username, password)
	return &SMTPMailer{
		fromEmail: fromEmail,
		dialer:    dialer,
	}
}

func (m *SMTPMailer) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, fmt.Errorf("parse template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, fmt.Errorf("execute subject template: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, fmt.Errorf("execute body template: %w", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(m.fromEmail, FromName))
	message.SetHeader("To", email)
	message.SetHeader("Subject", subject.String())
	message.SetBody("text/html", body.String())

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := m.dialer.DialAndSend(message); err != nil {
			lastErr = err
			time.Sleep(time.Second * time.Duration(i+1))
			continue
		}
		return 200, nil
	}

	return -1, fmt.Errorf("send email after %d attempts: %w", maxRetries, lastErr)
}
