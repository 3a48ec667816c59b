package models

// Ping is an append-only check-in log entry. Only "success" pings exist
// today; the status column leaves room for failure-reporting pings.
type Ping struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	MonitorID string `gorm:"not null;index" json:"monitor_id"`
	Timestamp int64  `gorm:"not null;index" json:"timestamp"` // milliseconds since epoch
	Status    string `gorm:"not null" json:"status"`

	// Relationships
	Monitor Monitor `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

const PingStatusSuccess = "success"
