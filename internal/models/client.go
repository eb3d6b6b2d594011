package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client entity
type Client struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `gorm:"index" json:"email,omitempty"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Address   string    `json:"address,omitempty"`
	NIP       string    `json:"nip,omitempty"` // tax identification number
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
