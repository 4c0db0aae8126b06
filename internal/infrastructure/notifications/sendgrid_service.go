package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"regexp"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/you/schedulo/domain"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family:'Segoe UI', Arial, sans-serif; padding:24px;">
  <h1 style="color:#4e46e5;">Welcome to Schedulo!</h1>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>Your account has been created on Schedulo Task Manager. You are ready
  to organize tasks and manage your day.</p>
  <p><strong>Your account email:</strong> {{.Email}}</p>
  <p>If you did not create this account, please ignore this email or
  contact support.</p>
  <p style="color:#666; font-size:13px;">This is an automated message, please do not reply.</p>
</div>`))

var otpTmpl = template.Must(template.New("otp").Parse(`
<div style="font-family:'Segoe UI', Arial, sans-serif; padding:24px;">
  <h2 style="color:#4e46e5;">Password Reset Request</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>Use the OTP below to continue:</p>
  <div style="font-size:32px; font-weight:bold; color:#4e46e5; letter-spacing:4px;">{{.Code}}</div>
  <p>This OTP expires in <strong>{{.Minutes}} minutes</strong>.</p>
  <p>If you did not request this, please ignore this message. Your
  account is safe.</p>
  <p style="color:#666; font-size:13px;">This is an automated email. Please do not reply.</p>
</div>`))

var passwordChangedTmpl = template.Must(template.New("changed").Parse(`
<div style="font-family:'Segoe UI', Arial, sans-serif; padding:24px;">
  <h2 style="color:#4e46e5;">Your password was changed</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>The password for your Schedulo account was just changed. If this
  was not you, reset your password immediately.</p>
  <p style="color:#666; font-size:13px;">This is an automated email. Please do not reply.</p>
</div>`))

// SendGridServiceImpl implements domain.NotificationService
type SendGridServiceImpl struct {
	apiKey    string
	fromName  string
	fromEmail string
}

// NewSendGridService creates a new SendGrid notification service.
func NewSendGridService(apiKey, fromName, fromEmail string) domain.NotificationService {
	return &SendGridServiceImpl{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendWelcome implements domain.NotificationService
func (s *SendGridServiceImpl) SendWelcome(toName, toEmail string) error {
	subject := fmt.Sprintf("Welcome to Schedulo Task Manager, %s!", toName)
	html, err := render(welcomeTmpl, map[string]any{"Name": toName, "Email": toEmail})
	if err != nil {
		return err
	}
	return s.send(toName, toEmail, subject, html)
}

// SendOTP implements domain.NotificationService
func (s *SendGridServiceImpl) SendOTP(toName, toEmail, code string, ttl time.Duration) error {
	subject := "Schedulo Password Reset - OTP Code"
	html, err := render(otpTmpl, map[string]any{
		"Name":    toName,
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
	if err != nil {
		return err
	}
	return s.send(toName, toEmail, subject, html)
}

// SendPasswordChanged implements domain.NotificationService
func (s *SendGridServiceImpl) SendPasswordChanged(toName, toEmail string) error {
	subject := "Schedulo - Your password was changed"
	html, err := render(passwordChangedTmpl, map[string]any{"Name": toName})
	if err != nil {
		return err
	}
	return s.send(toName, toEmail, subject, html)
}

func (s *SendGridServiceImpl) send(toName, toEmail, subject, html string) error {
	// If credentials are not configured, log instead of sending. The
	// subject is safe to log; the body may carry an OTP and is not.
	if s.apiKey == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	plainText := tagPattern.ReplaceAllString(html, "")
	message := mail.NewSingleEmail(from, subject, to, plainText, html)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}
	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}
