package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

const notificationTemplate = `<html>
<body style="font-family: sans-serif; color: #1f2933;">
	<p>Hi {{.Name}},</p>
	<p>{{.Message}}</p>
	<p>— The LeadPilot team</p>
</body>
</html>`

var notificationTmpl = template.Must(template.New("notification").Parse(notificationTemplate))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = "no-reply@leadpilot.io"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendNotification delivers the email copy of a user-facing alert.
func (s *EmailSender) SendNotification(to, name, subject, message string) error {
	if name == "" {
		name = "there"
	}

	var body bytes.Buffer
	data := NotificationEmailData{Name: name, Message: message}
	if err := notificationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render notification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send SMTP email: %w", err)
	}

	return nil
}
