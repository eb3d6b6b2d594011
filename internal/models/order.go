package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "nowe"
	OrderStatusInProgress OrderStatus = "w trakcie"
	OrderStatusCompleted  OrderStatus = "ukończone"
	OrderStatusCancelled  OrderStatus = "anulowane"
	OrderStatusOnHold     OrderStatus = "oczekujące"
)

// ValidOrderStatus reports whether s is one of the known status values.
// The lifecycle is a flat enumeration: any status may follow any other,
// including reopening a completed order.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted,
		OrderStatusCancelled, OrderStatusOnHold:
		return true
	}
	return false
}

// ActiveOrderStatuses are the states shown on the active-work views.
var ActiveOrderStatuses = []OrderStatus{OrderStatusNew, OrderStatusInProgress, OrderStatusOnHold}

// ChecklistItem is a single task on an order's checklist. Identity is local
// to the owning order.
type ChecklistItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// ImageSet holds references to before/after photo collections.
type ImageSet struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// Order is a unit of billable work for a client and the anchor for
// cost-ledger entries.
type Order struct {
	ID          string                             `gorm:"type:char(36);primaryKey" json:"id"`
	OrderNumber string                             `gorm:"uniqueIndex;not null" json:"orderNumber"`
	ClientID    string                             `gorm:"type:char(36);not null;index" json:"clientId"`
	Title       string                             `gorm:"not null" json:"title"`
	Description string                             `json:"description"`
	Status      OrderStatus                        `gorm:"not null;index" json:"status"`
	Value       float64                            `json:"value"` // expected revenue, net
	StartDate   time.Time                          `gorm:"not null;index" json:"startDate"`
	EndDate     *time.Time                         `json:"endDate,omitempty"`
	Address     string                             `json:"address,omitempty"`
	Notes       string                             `json:"notes,omitempty"`
	Tasks       datatypes.JSONSlice[ChecklistItem] `json:"tasks"`
	Images      datatypes.JSONType[ImageSet]       `json:"images"`
	CreatedAt   time.Time                          `json:"createdAt"`
	UpdatedAt   time.Time                          `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
