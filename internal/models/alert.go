package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AlertChannelWebhook = "webhook"
	AlertChannelEmail   = "email"

	AlertStatusSent   = "sent"
	AlertStatusFailed = "failed"
)

// Alert records one delivery attempt made by the sweeper. Delivery is
// best-effort, so this log is the only trace a failed attempt leaves.
type Alert struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	MonitorID string         `gorm:"not null;index" json:"monitor_id"`
	Channel   string         `gorm:"not null" json:"channel"`
	Status    string         `gorm:"not null" json:"status"`
	Payload   datatypes.JSON `json:"payload"`
	Message   string         `json:"message"`
	SentAt    time.Time      `gorm:"not null" json:"sent_at"`

	// Relationships
	Monitor Monitor `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
