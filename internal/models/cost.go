package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cost-ledger entries. Each entry carries a denormalized Total computed from
// its own fields at write time; the services layer owns the formulas and is
// the only place allowed to set Total.

type MaterialCost struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID   string    `gorm:"type:char(36);not null;index" json:"orderId"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `gorm:"not null" json:"unitPrice"` // net
	VATRate   float64   `gorm:"not null" json:"vatRate"`   // percent
	Total     float64   `gorm:"not null" json:"total"`     // gross
	CreatedAt time.Time `json:"createdAt"`
}

func (m *MaterialCost) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type LaborCost struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID     string    `gorm:"type:char(36);not null;index" json:"orderId"`
	Description string    `gorm:"not null" json:"description"`
	Hours       float64   `gorm:"not null" json:"hours"`
	RatePerHour float64   `gorm:"not null" json:"ratePerHour"` // net, no VAT applied
	Total       float64   `gorm:"not null" json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (l *LaborCost) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type OtherCost struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID     string    `gorm:"type:char(36);not null;index" json:"orderId"`
	Description string    `gorm:"not null" json:"description"`
	Cost        float64   `gorm:"not null" json:"cost"` // net, no VAT modeling
	CreatedAt   time.Time `json:"createdAt"`
}

func (o *OtherCost) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
