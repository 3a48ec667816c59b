package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/cronmon-dev/cronmon/internal/store"
	"github.com/cronmon-dev/cronmon/internal/utils"
	"github.com/cronmon-dev/cronmon/internal/ws"
	"github.com/gin-gonic/gin"
)

// Ping records a check-in. This is the only path that moves a monitor out
// of the down state.
func (h *Handler) Ping(ctx *gin.Context) {
	monitorID, err := utils.GetMonitorID(ctx)

	if err != nil {
		ctx.String(http.StatusBadRequest, "Missing monitor ID")
		return
	}

	monitor, err := h.Store.GetMonitor(ctx, monitorID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.String(http.StatusNotFound, "Monitor not found")
		} else {
			ctx.String(http.StatusInternalServerError, "Failed to retrieve monitor")
		}
		return
	}

	now := time.Now().UnixMilli()

	if err := h.Store.MarkPingedOk(ctx, monitorID, now); err != nil {
		ctx.String(http.StatusInternalServerError, "Failed to record ping")
		return
	}

	h.Metrics.PingsIngestedTotal.Inc()

	if monitor.Status != models.StatusUp {
		ws.BroadcastStatus(ws.StatusEvent{
			MonitorID:    monitor.ID,
			Name:         monitor.Name,
			Status:       models.StatusUp,
			FailureCount: 0,
		})
	}

	ctx.String(http.StatusOK, "OK")
}
