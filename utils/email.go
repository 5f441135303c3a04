package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Welcome to Franquia!"
		body := fmt.Sprintf(`<h2>Welcome to Franquia, %s!</h2>
<p>Your account is ready. From your portal you can:</p>
<ul>
<li>Track leads and clients for your unit</li>
<li>Record sales, consortium quotas and transactions</li>
<li>Follow your unit's health score on the dashboard</li>
</ul>
<p>The Franquia Team</p>`, strings.Split(name, " ")[0])
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

// SendLeadWonEmail notifies the franchise owner that a lead closed as won.
func SendLeadWonEmail(email, name, clientName string, value float64) {
	go func() {
		subject := "Lead won!"
		body := fmt.Sprintf(`<h2>Congratulations, %s!</h2>
<p>The negotiation with <strong>%s</strong> just closed as won.</p>
<p>Negotiated value: <strong>R$ %.2f</strong></p>
<p>The Franquia Team</p>`, strings.Split(name, " ")[0], clientName, value)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send lead won email to %s: %v", email, err)
		}
	}()
}

// SendUserInvitationEmail sends credentials to a newly created franchise user.
func SendUserInvitationEmail(email, name, franchiseName, password, portalURL string) {
	go func() {
		displayName := name
		if displayName == "" {
			displayName = "Team Member"
		}

		subject := fmt.Sprintf("You've been added to %s - Franquia", franchiseName)
		body := fmt.Sprintf(`<h2>Welcome to %s!</h2>
<p>Hi %s,</p>
<p>An account has been created for you at <strong>%s</strong> on Franquia.</p>
<div style="background:#f5f5f5;padding:15px;border-radius:8px;margin:20px 0;">
<p style="margin:5px 0;"><strong>Email:</strong> %s</p>
<p style="margin:5px 0;"><strong>Temporary Password:</strong> %s</p>
</div>
<p><a href="%s">Access your portal</a></p>
<p><strong>Important:</strong> Please log in and change your password immediately.</p>
<p>The Franquia Team</p>`,
			franchiseName,
			strings.Split(displayName, " ")[0],
			franchiseName,
			email,
			password,
			portalURL)

		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send invitation email to %s: %v", email, err)
		}
	}()
}
