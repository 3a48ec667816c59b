// Package store is the persistence boundary for monitors and their ping
// history. Handlers and the sweeper only ever touch the database through
// MonitorStore, which keeps both testable against an in-memory fake.
package store

import (
	"context"
	"errors"

	"github.com/cronmon-dev/cronmon/internal/models"
)

// ErrNotFound is returned when a monitor id does not exist.
var ErrNotFound = errors.New("monitor not found")

type MonitorStore interface {
	CreateMonitor(ctx context.Context, monitor *models.Monitor) error
	GetMonitor(ctx context.Context, id string) (models.Monitor, error)

	// ListMonitors returns every monitor, newest first.
	ListMonitors(ctx context.Context) ([]models.Monitor, error)

	// ListActiveMonitors returns every monitor the sweeper must evaluate,
	// i.e. all rows with status new, up or down.
	ListActiveMonitors(ctx context.Context) ([]models.Monitor, error)

	// MarkPingedOk appends a success Ping row at ts and, in the same
	// transaction, advances last_ping, sets status=up and resets
	// failure_count. This is the only operation that moves a monitor
	// out of the down state.
	MarkPingedOk(ctx context.Context, id string, ts int64) error

	// MarkOverdue sets status=down and the new consecutive failure count.
	MarkOverdue(ctx context.Context, id string, failureCount int) error

	// DeleteMonitorAndPings removes the monitor together with its ping
	// and alert history, leaving no orphaned rows.
	DeleteMonitorAndPings(ctx context.Context, id string) error

	RecentPings(ctx context.Context, id string, limit int) ([]models.Ping, error)
	RecordAlert(ctx context.Context, alert *models.Alert) error
}
