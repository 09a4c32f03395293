package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"minutemate/config"
)

// Mailer sends transactional mail for the application: the signup welcome
// message, shared meeting minutes, and reminder notifications.
type Mailer struct {
	cfg config.SMTPConfig
	log *logrus.Logger
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: logrus.New(),
	}
}

// Embedded email templates
var emailTemplates = map[string]string{
	"welcome": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header"><h2>Welcome to {{.CompanyName}}</h2></div>
    <div class="content">
        <p>Hello {{.FirstName}},</p>
        <p>Your account has been created. You can now sign in and start
        scheduling meetings, recording minutes and tracking tasks.</p>
    </div>
    <div class="footer"><p>© {{.Year}} {{.CompanyName}}. All rights reserved.</p></div>
</body>
</html>`,
	"minutes": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        pre { background: #f8f8f8; padding: 16px; border-radius: 4px; white-space: pre-wrap; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header"><h2>Minutes: {{.MeetingTitle}}</h2></div>
    <div class="content">
        <p>{{.SenderName}} shared the minutes of "{{.MeetingTitle}}" ({{.MeetingDate}}) with you.</p>
        <pre>{{.Minutes}}</pre>
    </div>
    <div class="footer"><p>© {{.Year}}. Sent by MinuteMate.</p></div>
</body>
</html>`,
	"reminder": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header"><h2>{{.Subject}}</h2></div>
    <div class="content">
        <p>Hello {{.FirstName}},</p>
        <p>{{.Body}}</p>
    </div>
    <div class="footer"><p>© {{.Year}}. Sent by MinuteMate.</p></div>
</body>
</html>`,
}

func (m *Mailer) send(to, subject, templateName string, data map[string]interface{}) error {
	// Without SMTP configured mail is logged instead of sent, so local
	// environments keep working.
	if m.cfg.Host == "" {
		m.log.WithFields(logrus.Fields{
			"to":       to,
			"subject":  subject,
			"template": templateName,
		}).Info("SMTP not configured, skipping email delivery")
		return nil
	}

	tmplText, ok := emailTemplates[templateName]
	if !ok {
		return fmt.Errorf("unknown email template: %s", templateName)
	}

	tmpl, err := template.New(templateName).Parse(tmplText)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	data["Subject"] = subject
	data["Year"] = time.Now().Year()

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromEmail, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.WithError(err).WithField("to", to).Error("failed to send email")
		return err
	}

	return nil
}

func (m *Mailer) SendWelcomeEmail(to, firstName, companyName string) error {
	if companyName == "" {
		companyName = "MinuteMate"
	}
	return m.send(to, "Welcome to "+companyName, "welcome", map[string]interface{}{
		"FirstName":   firstName,
		"CompanyName": companyName,
	})
}

func (m *Mailer) SendMinutesEmail(to, senderName, meetingTitle, meetingDate, minutes string) error {
	subject := fmt.Sprintf("Meeting minutes: %s", meetingTitle)
	return m.send(to, subject, "minutes", map[string]interface{}{
		"SenderName":   senderName,
		"MeetingTitle": meetingTitle,
		"MeetingDate":  meetingDate,
		"Minutes":      minutes,
	})
}

func (m *Mailer) SendReminderEmail(to, firstName, subject, body string) error {
	return m.send(to, subject, "reminder", map[string]interface{}{
		"FirstName": firstName,
		"Body":      body,
	})
}
