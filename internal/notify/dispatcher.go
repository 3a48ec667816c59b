package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the optional email transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPFromEnv reads SMTP_* variables and returns nil when SMTP_HOST is
// unset, leaving the email channel disabled.
func SMTPFromEnv() *SMTPConfig {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}

	return &SMTPConfig{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
	}
}

// Dispatcher is the production Notifier: webhook over HTTP POST, email over
// SMTP when configured.
type Dispatcher struct {
	client *http.Client
	smtp   *SMTPConfig
}

func NewDispatcher(smtp *SMTPConfig) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{},
		smtp:   smtp,
	}
}

func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload BreachPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (d *Dispatcher) SendEmail(ctx context.Context, to, subject, body string) error {
	if d.smtp == nil {
		return ErrEmailDisabled
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(d.smtp.Host, d.smtp.Port, d.smtp.Username, d.smtp.Password)

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	return nil
}
