package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityOrder  ActivityType = "order"
	ActivityQuote  ActivityType = "quote"
	ActivityClient ActivityType = "client"
)

type ActivityAction string

const (
	ActionCreated ActivityAction = "created"
	ActionUpdated ActivityAction = "updated"
	ActionDeleted ActivityAction = "deleted"
)

// Activity is an append-only log entry. ItemName is a snapshot of the
// name/title/number at the time of the action and is not kept in sync with
// later renames.
type Activity struct {
	ID        string         `gorm:"type:char(36);primaryKey" json:"id"`
	Type      ActivityType   `gorm:"not null;index" json:"type"`
	Action    ActivityAction `gorm:"not null;index" json:"action"`
	ItemID    string         `gorm:"type:char(36);not null" json:"itemId"`
	ItemName  string         `json:"itemName"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
