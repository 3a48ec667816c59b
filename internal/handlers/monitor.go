package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/cronmon-dev/cronmon/internal/store"
	"github.com/cronmon-dev/cronmon/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const recentPingsLimit = 50

type CreateMonitorRequest struct {
	Name         string `json:"name" binding:"required"`
	Schedule     string `json:"schedule" binding:"required"` // e.g. "5m", "1h", "12h", "1d"
	GraceSeconds *int   `json:"grace_seconds"`
	AlertWebhook string `json:"alert_webhook"`
	AlertEmail   string `json:"alert_email"`
}

type MonitorResponse struct {
	models.Monitor
	PingURL string `json:"ping_url"`
}

type MonitorDetailResponse struct {
	MonitorResponse
	RecentPings []models.Ping `json:"recent_pings"`
}

func (h *Handler) monitorResponse(monitor models.Monitor) MonitorResponse {
	return MonitorResponse{
		Monitor: monitor,
		PingURL: h.BaseURL + "/ping/" + monitor.ID,
	}
}

func (h *Handler) CreateMonitor(ctx *gin.Context) {
	var req CreateMonitorRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, schedule"})
		return
	}

	graceSeconds := 60
	if req.GraceSeconds != nil {
		if *req.GraceSeconds < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "grace_seconds must not be negative"})
			return
		}
		graceSeconds = *req.GraceSeconds
	}

	monitor := models.Monitor{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Schedule:     req.Schedule,
		GraceSeconds: graceSeconds,
		AlertWebhook: req.AlertWebhook,
		AlertEmail:   req.AlertEmail,
		CreatedAt:    time.Now().UnixMilli(),
		Status:       models.StatusNew,
	}

	if err := h.Store.CreateMonitor(ctx, &monitor); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create monitor"})
		return
	}

	ctx.JSON(http.StatusCreated, h.monitorResponse(monitor))
}

func (h *Handler) ListMonitors(ctx *gin.Context) {
	monitors, err := h.Store.ListMonitors(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve monitors"})
		return
	}

	responses := make([]MonitorResponse, 0, len(monitors))
	for _, monitor := range monitors {
		responses = append(responses, h.monitorResponse(monitor))
	}

	ctx.JSON(http.StatusOK, responses)
}

func (h *Handler) GetMonitor(ctx *gin.Context) {
	monitorID, err := utils.GetMonitorID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	monitor, err := h.Store.GetMonitor(ctx, monitorID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Monitor not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve monitor"})
		}
		return
	}

	pings, err := h.Store.RecentPings(ctx, monitorID, recentPingsLimit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pings"})
		return
	}

	ctx.JSON(http.StatusOK, MonitorDetailResponse{
		MonitorResponse: h.monitorResponse(monitor),
		RecentPings:     pings,
	})
}

func (h *Handler) DeleteMonitor(ctx *gin.Context) {
	monitorID, err := utils.GetMonitorID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.DeleteMonitorAndPings(ctx, monitorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Monitor not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete monitor"})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
