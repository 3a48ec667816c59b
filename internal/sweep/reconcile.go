package sweep

import (
	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/cronmon-dev/cronmon/internal/schedule"
)

// Reconcile decides whether a single monitor is overdue at now (milliseconds
// since epoch) and, if so, the failure count it should advance to. It is a
// pure function of the row, so each sweep tick is an independent evaluation
// with no state carried between passes.
//
// A monitor that has never been pinged is timed from creation, which gives
// every new monitor one full interval plus grace before its first alert.
func Reconcile(monitor models.Monitor, now int64) (overdue bool, failureCount int) {
	expectedInterval := schedule.Parse(monitor.Schedule)
	graceMs := int64(monitor.GraceSeconds) * 1000

	baseline := monitor.CreatedAt
	if monitor.LastPing != nil {
		baseline = *monitor.LastPing
	}

	if now-baseline > expectedInterval+graceMs {
		return true, monitor.FailureCount + 1
	}

	return false, monitor.FailureCount
}
