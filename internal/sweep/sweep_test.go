package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cronmon-dev/cronmon/internal/metrics"
	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/cronmon-dev/cronmon/internal/notify"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps monitors in memory so sweep behavior can be tested
// without a database.
type fakeStore struct {
	monitors map[string]*models.Monitor
	order    []string
	alerts   []models.Alert
}

func newFakeStore() *fakeStore {
	return &fakeStore{monitors: make(map[string]*models.Monitor)}
}

func (f *fakeStore) add(monitor models.Monitor) {
	f.monitors[monitor.ID] = &monitor
	f.order = append(f.order, monitor.ID)
}

func (f *fakeStore) CreateMonitor(_ context.Context, monitor *models.Monitor) error {
	f.add(*monitor)
	return nil
}

func (f *fakeStore) GetMonitor(_ context.Context, id string) (models.Monitor, error) {
	if monitor, ok := f.monitors[id]; ok {
		return *monitor, nil
	}
	return models.Monitor{}, errors.New("monitor not found")
}

func (f *fakeStore) ListMonitors(ctx context.Context) ([]models.Monitor, error) {
	return f.ListActiveMonitors(ctx)
}

func (f *fakeStore) ListActiveMonitors(_ context.Context) ([]models.Monitor, error) {
	monitors := make([]models.Monitor, 0, len(f.order))
	for _, id := range f.order {
		monitors = append(monitors, *f.monitors[id])
	}
	return monitors, nil
}

func (f *fakeStore) MarkPingedOk(_ context.Context, id string, ts int64) error {
	monitor := f.monitors[id]
	monitor.LastPing = &ts
	monitor.Status = models.StatusUp
	monitor.FailureCount = 0
	return nil
}

func (f *fakeStore) MarkOverdue(_ context.Context, id string, failureCount int) error {
	monitor := f.monitors[id]
	monitor.Status = models.StatusDown
	monitor.FailureCount = failureCount
	return nil
}

func (f *fakeStore) DeleteMonitorAndPings(_ context.Context, id string) error {
	delete(f.monitors, id)
	return nil
}

func (f *fakeStore) RecentPings(_ context.Context, _ string, _ int) ([]models.Ping, error) {
	return nil, nil
}

func (f *fakeStore) RecordAlert(_ context.Context, alert *models.Alert) error {
	f.alerts = append(f.alerts, *alert)
	return nil
}

// fakeNotifier records deliveries and optionally fails them.
type fakeNotifier struct {
	webhooks []notify.BreachPayload
	emails   []string
	err      error
}

func (f *fakeNotifier) SendWebhook(_ context.Context, _ string, payload notify.BreachPayload) error {
	f.webhooks = append(f.webhooks, payload)
	return f.err
}

func (f *fakeNotifier) SendEmail(_ context.Context, to, _, _ string) error {
	f.emails = append(f.emails, to)
	return f.err
}

func newSweeper(st *fakeStore, n *fakeNotifier) *Sweeper {
	return New(st, n, metrics.New(), Options{})
}

const createdAt = int64(1_700_000_000_000)

func minuteMonitor(id string) models.Monitor {
	return models.Monitor{
		ID:           id,
		Name:         "job " + id,
		Schedule:     "1m",
		GraceSeconds: 0,
		CreatedAt:    createdAt,
		Status:       models.StatusNew,
		AlertWebhook: "http://hooks.test/" + id,
	}
}

func TestReconcileBoundary(t *testing.T) {
	monitor := minuteMonitor("mon-1")

	t.Run("not overdue just inside the window", func(t *testing.T) {
		overdue, count := Reconcile(monitor, createdAt+59_999)
		require.False(t, overdue)
		require.Equal(t, 0, count)
	})

	t.Run("exactly at the window is not a breach", func(t *testing.T) {
		overdue, _ := Reconcile(monitor, createdAt+60_000)
		require.False(t, overdue)
	})

	t.Run("overdue just past the window", func(t *testing.T) {
		overdue, count := Reconcile(monitor, createdAt+60_001)
		require.True(t, overdue)
		require.Equal(t, 1, count)
	})
}

func TestReconcileBaselineMovesWithLastPing(t *testing.T) {
	monitor := minuteMonitor("mon-1")
	lastPing := createdAt + 300_000
	monitor.LastPing = &lastPing
	monitor.Status = models.StatusUp

	overdue, _ := Reconcile(monitor, createdAt+300_000+59_999)
	require.False(t, overdue)

	overdue, _ = Reconcile(monitor, createdAt+300_000+60_001)
	require.True(t, overdue)
}

func TestReconcileGraceWindow(t *testing.T) {
	monitor := minuteMonitor("mon-1")
	monitor.GraceSeconds = 30

	overdue, _ := Reconcile(monitor, createdAt+89_999)
	require.False(t, overdue)

	overdue, _ = Reconcile(monitor, createdAt+90_001)
	require.True(t, overdue)
}

func TestReconcileMalformedScheduleUsesFallback(t *testing.T) {
	monitor := minuteMonitor("mon-1")
	monitor.Schedule = "whenever"

	// The one-hour fail-safe keeps a misconfigured monitor sweepable.
	overdue, _ := Reconcile(monitor, createdAt+3_600_000)
	require.False(t, overdue)

	overdue, _ = Reconcile(monitor, createdAt+3_600_001)
	require.True(t, overdue)
}

func TestRunSweepMarksOverdueAndDispatches(t *testing.T) {
	st := newFakeStore()
	st.add(minuteMonitor("mon-1"))

	n := &fakeNotifier{}
	s := newSweeper(st, n)

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+120_000))

	got := st.monitors["mon-1"]
	require.Equal(t, models.StatusDown, got.Status)
	require.Equal(t, 1, got.FailureCount)

	require.Len(t, n.webhooks, 1)
	payload := n.webhooks[0]
	require.Equal(t, "mon-1", payload.MonitorID)
	require.Equal(t, "job mon-1", payload.MonitorName)
	require.Equal(t, models.StatusDown, payload.Status)
	require.Nil(t, payload.LastPing)
	require.Equal(t, 1, payload.FailureCount)
	require.Equal(t, createdAt+120_000, payload.Timestamp)

	require.Len(t, st.alerts, 1)
	require.Equal(t, models.AlertStatusSent, st.alerts[0].Status)
	require.Equal(t, models.AlertChannelWebhook, st.alerts[0].Channel)
}

func TestRunSweepRepeatsIncrementAndRedispatch(t *testing.T) {
	st := newFakeStore()
	st.add(minuteMonitor("mon-1"))

	n := &fakeNotifier{}
	s := newSweeper(st, n)

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+120_000))
	s.RunSweep(context.Background(), time.UnixMilli(createdAt+180_000))

	got := st.monitors["mon-1"]
	require.Equal(t, models.StatusDown, got.Status)
	require.Equal(t, 2, got.FailureCount)
	require.Len(t, n.webhooks, 2)
	require.Equal(t, 2, n.webhooks[1].FailureCount)
}

func TestRunSweepHealthyMonitorUntouched(t *testing.T) {
	st := newFakeStore()
	monitor := minuteMonitor("mon-1")
	lastPing := createdAt + 100_000
	monitor.LastPing = &lastPing
	monitor.Status = models.StatusUp
	st.add(monitor)

	n := &fakeNotifier{}
	s := newSweeper(st, n)

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+130_000))

	got := st.monitors["mon-1"]
	require.Equal(t, models.StatusUp, got.Status)
	require.Equal(t, 0, got.FailureCount)
	require.Empty(t, n.webhooks)
}

func TestRunSweepDeliveryFailureDoesNotStopThePass(t *testing.T) {
	st := newFakeStore()
	st.add(minuteMonitor("mon-1"))
	st.add(minuteMonitor("mon-2"))

	n := &fakeNotifier{err: errors.New("connection refused")}
	s := newSweeper(st, n)

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+120_000))

	// Both monitors were evaluated and marked down despite the failures.
	for _, id := range []string{"mon-1", "mon-2"} {
		got := st.monitors[id]
		require.Equal(t, models.StatusDown, got.Status)
		require.Equal(t, 1, got.FailureCount)
	}

	require.Len(t, n.webhooks, 2)
	require.Len(t, st.alerts, 2)
	for _, alert := range st.alerts {
		require.Equal(t, models.AlertStatusFailed, alert.Status)
		require.Contains(t, alert.Message, "connection refused")
	}
}

func TestRunSweepSilentMonitorSkipsDispatch(t *testing.T) {
	st := newFakeStore()
	monitor := minuteMonitor("mon-1")
	monitor.AlertWebhook = ""
	st.add(monitor)

	n := &fakeNotifier{}
	s := newSweeper(st, n)

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+120_000))

	got := st.monitors["mon-1"]
	require.Equal(t, models.StatusDown, got.Status)
	require.Empty(t, n.webhooks)
	require.Empty(t, n.emails)
	require.Empty(t, st.alerts)
}

func TestRunSweepEmailTarget(t *testing.T) {
	st := newFakeStore()
	monitor := minuteMonitor("mon-1")
	monitor.AlertWebhook = ""
	monitor.AlertEmail = "ops@example.com"
	st.add(monitor)

	n := &fakeNotifier{}
	s := newSweeper(st, n)

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+120_000))

	require.Empty(t, n.webhooks)
	require.Equal(t, []string{"ops@example.com"}, n.emails)
	require.Len(t, st.alerts, 1)
	require.Equal(t, models.AlertChannelEmail, st.alerts[0].Channel)
}

func TestRunSweepNotifiesTransitions(t *testing.T) {
	st := newFakeStore()
	st.add(minuteMonitor("mon-1"))

	n := &fakeNotifier{}
	s := newSweeper(st, n)

	var transitions []models.Monitor
	s.OnTransition = func(monitor models.Monitor) {
		transitions = append(transitions, monitor)
	}

	s.RunSweep(context.Background(), time.UnixMilli(createdAt+120_000))

	require.Len(t, transitions, 1)
	require.Equal(t, models.StatusDown, transitions[0].Status)
	require.Equal(t, 1, transitions[0].FailureCount)
}
