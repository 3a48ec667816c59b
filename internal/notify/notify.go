// Package notify delivers breach notifications to the targets configured
// on a monitor. Delivery is best-effort: callers log failures and move on,
// so liveness evaluation never depends on alert-channel availability.
package notify

import (
	"context"
	"errors"
)

// ErrEmailDisabled is returned by SendEmail when no SMTP transport is
// configured. Email stays a declared extension point until then.
var ErrEmailDisabled = errors.New("email alerts disabled: no SMTP transport configured")

// BreachPayload is the webhook body sent when a monitor is found overdue.
type BreachPayload struct {
	MonitorID    string `json:"monitor_id"`
	MonitorName  string `json:"monitor_name"`
	Status       string `json:"status"`
	LastPing     *int64 `json:"last_ping"`
	FailureCount int    `json:"failure_count"`
	Timestamp    int64  `json:"timestamp"`
}

type Notifier interface {
	SendWebhook(ctx context.Context, url string, payload BreachPayload) error
	SendEmail(ctx context.Context, to, subject, body string) error
}
