package model

import "time"

// SequenceCounter holds the last value issued for a named sequence.
type SequenceCounter struct {
	Name      string    `gorm:"primaryKey;type:varchar(64)"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time
}
