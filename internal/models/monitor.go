package models

const (
	StatusNew  = "new"  // created, never pinged
	StatusUp   = "up"   // last ping arrived within interval + grace
	StatusDown = "down" // overdue, alerting each sweep
)

type Monitor struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Schedule     string `gorm:"not null" json:"schedule"` // cadence string, e.g. "5m", "1h", "1d"
	GraceSeconds int    `gorm:"not null;default:60" json:"grace_seconds"`
	AlertWebhook string `json:"alert_webhook,omitempty"`
	AlertEmail   string `json:"alert_email,omitempty"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:milli" json:"created_at"` // milliseconds since epoch
	LastPing     *int64 `json:"last_ping"`                  // nil until the first ping
	Status       string `gorm:"not null;index" json:"status"`
	FailureCount int    `gorm:"not null;default:0" json:"failure_count"`

	// Relationships
	Pings  []Ping  `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Alerts []Alert `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
