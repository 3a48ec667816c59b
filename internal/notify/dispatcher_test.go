package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendWebhook(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotPayload     BreachPayload
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	lastPing := int64(1_700_000_000_000)
	payload := BreachPayload{
		MonitorID:    "mon-1",
		MonitorName:  "nightly backup",
		Status:       "down",
		LastPing:     &lastPing,
		FailureCount: 3,
		Timestamp:    1_700_000_060_000,
	}

	d := NewDispatcher(nil)
	require.NoError(t, d.SendWebhook(context.Background(), server.URL, payload))

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, payload, gotPayload)
}

func TestSendWebhookRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDispatcher(nil)
	err := d.SendWebhook(context.Background(), server.URL, BreachPayload{MonitorID: "mon-1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestSendWebhookUnreachableTarget(t *testing.T) {
	d := NewDispatcher(nil)
	err := d.SendWebhook(context.Background(), "http://127.0.0.1:1/hook", BreachPayload{MonitorID: "mon-1"})
	require.Error(t, err)
}

func TestSendEmailDisabledWithoutTransport(t *testing.T) {
	d := NewDispatcher(nil)
	err := d.SendEmail(context.Background(), "ops@example.com", "subject", "body")
	require.ErrorIs(t, err, ErrEmailDisabled)
}

func TestSMTPFromEnv(t *testing.T) {
	t.Run("disabled without host", func(t *testing.T) {
		t.Setenv("SMTP_HOST", "")
		require.Nil(t, SMTPFromEnv())
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("SMTP_PORT", "")
		t.Setenv("SMTP_USERNAME", "alerts@example.com")
		t.Setenv("SMTP_PASSWORD", "secret")
		t.Setenv("SMTP_FROM", "")

		cfg := SMTPFromEnv()
		require.NotNil(t, cfg)
		require.Equal(t, "smtp.example.com", cfg.Host)
		require.Equal(t, 587, cfg.Port)
		require.Equal(t, "alerts@example.com", cfg.From)
	})
}
