// Package sweep runs the liveness reconciliation pass: on every tick it
// loads the active monitors, marks the overdue ones down and dispatches
// their alerts.
package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cronmon-dev/cronmon/internal/metrics"
	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/cronmon-dev/cronmon/internal/notify"
	"github.com/cronmon-dev/cronmon/internal/store"
	"gorm.io/datatypes"
)

type Sweeper struct {
	store    store.MonitorStore
	notifier notify.Notifier
	metrics  *metrics.Metrics

	interval     time.Duration
	alertTimeout time.Duration

	// OnTransition, when set, is called after a monitor is marked down.
	// main wires it to the websocket status feed.
	OnTransition func(monitor models.Monitor)

	ctx    context.Context
	cancel context.CancelFunc
}

type Options struct {
	Interval     time.Duration // tick period, default 60s
	AlertTimeout time.Duration // per-delivery bound, default 10s
}

func New(st store.MonitorStore, notifier notify.Notifier, m *metrics.Metrics, opts Options) *Sweeper {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.AlertTimeout <= 0 {
		opts.AlertTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Sweeper{
		store:        st,
		notifier:     notifier,
		metrics:      m,
		interval:     opts.Interval,
		alertTimeout: opts.AlertTimeout,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start() {
	log.Printf("Starting sweeper with %v interval", s.interval)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.RunSweep(s.ctx, time.Now())
			}
		}
	}()
}

// Stop cancels the sweep loop.
func (s *Sweeper) Stop() {
	log.Println("Stopping sweeper")
	s.cancel()
}

// RunSweep evaluates every active monitor once. Monitors are independent:
// a store or delivery failure for one is logged and the pass continues.
func (s *Sweeper) RunSweep(ctx context.Context, now time.Time) {
	nowMs := now.UnixMilli()

	monitors, err := s.store.ListActiveMonitors(ctx)
	if err != nil {
		log.Printf("Sweep aborted, failed to list monitors: %v", err)
		return
	}

	s.metrics.SweepsTotal.Inc()
	s.metrics.ActiveMonitors.Set(float64(len(monitors)))

	for _, monitor := range monitors {
		overdue, failureCount := Reconcile(monitor, nowMs)
		if !overdue {
			continue
		}

		if err := s.store.MarkOverdue(ctx, monitor.ID, failureCount); err != nil {
			log.Printf("Failed to mark monitor %s overdue: %v", monitor.ID, err)
			continue
		}

		s.metrics.MonitorsOverdueTotal.Inc()
		log.Printf("Monitor %s (%s) is down, failure count %d", monitor.ID, monitor.Name, failureCount)

		monitor.Status = models.StatusDown
		monitor.FailureCount = failureCount

		if s.OnTransition != nil {
			s.OnTransition(monitor)
		}

		s.dispatchAlerts(ctx, monitor, nowMs)
	}
}

// dispatchAlerts attempts delivery to each configured target. Failures are
// absorbed here: logged, counted and recorded, never returned.
func (s *Sweeper) dispatchAlerts(ctx context.Context, monitor models.Monitor, nowMs int64) {
	payload := notify.BreachPayload{
		MonitorID:    monitor.ID,
		MonitorName:  monitor.Name,
		Status:       monitor.Status,
		LastPing:     monitor.LastPing,
		FailureCount: monitor.FailureCount,
		Timestamp:    nowMs,
	}

	if monitor.AlertWebhook != "" {
		alertCtx, cancel := context.WithTimeout(ctx, s.alertTimeout)
		err := s.notifier.SendWebhook(alertCtx, monitor.AlertWebhook, payload)
		cancel()

		if err != nil {
			log.Printf("Failed to send webhook alert for monitor %s: %v", monitor.ID, err)
		}
		s.recordAlert(ctx, monitor, models.AlertChannelWebhook, payload, err)
	}

	if monitor.AlertEmail != "" {
		alertCtx, cancel := context.WithTimeout(ctx, s.alertTimeout)
		err := s.notifier.SendEmail(alertCtx, monitor.AlertEmail, emailSubject(monitor), emailBody(monitor))
		cancel()

		if err != nil {
			log.Printf("Failed to send email alert for monitor %s: %v", monitor.ID, err)
		}
		s.recordAlert(ctx, monitor, models.AlertChannelEmail, payload, err)
	}
}

func (s *Sweeper) recordAlert(ctx context.Context, monitor models.Monitor, channel string, payload notify.BreachPayload, deliveryErr error) {
	status := models.AlertStatusSent
	message := ""

	if deliveryErr != nil {
		status = models.AlertStatusFailed
		message = deliveryErr.Error()
		s.metrics.AlertsFailedTotal.WithLabelValues(channel).Inc()
	} else {
		s.metrics.AlertsSentTotal.WithLabelValues(channel).Inc()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal alert payload for monitor %s: %v", monitor.ID, err)
		return
	}

	alert := models.Alert{
		MonitorID: monitor.ID,
		Channel:   channel,
		Status:    status,
		Payload:   datatypes.JSON(body),
		Message:   message,
		SentAt:    time.Now(),
	}

	if err := s.store.RecordAlert(ctx, &alert); err != nil {
		log.Printf("Failed to record alert for monitor %s: %v", monitor.ID, err)
	}
}

func emailSubject(monitor models.Monitor) string {
	return fmt.Sprintf("[cronmon] %s is down", monitor.Name)
}

func emailBody(monitor models.Monitor) string {
	lastPing := "never"
	if monitor.LastPing != nil {
		lastPing = time.UnixMilli(*monitor.LastPing).UTC().Format("2006-01-02 15:04:05 UTC")
	}

	return fmt.Sprintf(
		"Monitor %q missed its schedule (%s).\n\nLast check-in: %s\nConsecutive missed sweeps: %d\n",
		monitor.Name, monitor.Schedule, lastPing, monitor.FailureCount,
	)
}
