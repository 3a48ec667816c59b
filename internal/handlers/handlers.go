package handlers

import (
	"github.com/cronmon-dev/cronmon/internal/metrics"
	"github.com/cronmon-dev/cronmon/internal/store"
)

// Handler carries the dependencies shared by the request-driven endpoints.
type Handler struct {
	Store   store.MonitorStore
	Metrics *metrics.Metrics

	// BaseURL is prefixed to /ping/:id when rendering ping URLs.
	BaseURL string
}

func New(st store.MonitorStore, m *metrics.Metrics, baseURL string) *Handler {
	return &Handler{
		Store:   st,
		Metrics: m,
		BaseURL: baseURL,
	}
}
