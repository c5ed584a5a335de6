package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationSourceWebhook = "webhook"
	NotificationSourcePoll    = "poll"
)

const (
	NotificationOutcomeReceived  = "RECEIVED"
	NotificationOutcomeApplied   = "APPLIED"
	NotificationOutcomeIgnored   = "IGNORED"
	NotificationOutcomeRejected  = "REJECTED"
	NotificationOutcomeNotFound  = "NOT_FOUND"
	NotificationOutcomeFailed    = "FAILED"
	NotificationOutcomeUnchanged = "UNCHANGED"
)

// Notification journals every inbound state report.
type Notification struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;<-:create" json:"id"`
	Source        string         `gorm:"type:varchar(16);not null" json:"source"`
	TransactionID string         `gorm:"type:varchar(32);index" json:"transaction_id"`
	ReportedState string         `gorm:"type:varchar(16)" json:"reported_state"`
	Payload       datatypes.JSON `json:"payload"`
	Outcome       string         `gorm:"type:varchar(16);not null" json:"outcome"`
	Detail        *string        `gorm:"type:text" json:"detail"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
