package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "projekt"
	QuoteStatusSent     QuoteStatus = "wyslane"
	QuoteStatusAccepted QuoteStatus = "zaakceptowane"
	QuoteStatusRejected QuoteStatus = "odrzucone"
)

func ValidQuoteStatus(s QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Quote is a priced proposal, optionally linked to an order. Subtotal,
// VATTotal and Total are derived from Items and recomputed by the quote
// service on every mutation that touches the item list; they are never
// editable on their own.
type Quote struct {
	ID          string      `gorm:"type:char(36);primaryKey" json:"id"`
	QuoteNumber string      `gorm:"uniqueIndex;not null" json:"quoteNumber"`
	ClientID    string      `gorm:"type:char(36);not null;index" json:"clientId"`
	OrderID     string      `gorm:"type:char(36);index" json:"orderId,omitempty"`
	Status      QuoteStatus `gorm:"not null;index" json:"status"`
	Items       []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal    float64     `gorm:"not null" json:"subtotal"` // net
	VATTotal    float64     `gorm:"not null" json:"vatTotal"`
	Total       float64     `gorm:"not null" json:"total"` // gross
	ValidUntil  *time.Time  `json:"validUntil,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type QuoteItem struct {
	ID          string  `gorm:"type:char(36);primaryKey" json:"id"`
	QuoteID     string  `gorm:"type:char(36);not null;index" json:"-"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"` // net
	VATRate     float64 `gorm:"not null" json:"vatRate"`   // percent
	Total       float64 `gorm:"not null" json:"total"`     // gross, derived
}

func (i *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
