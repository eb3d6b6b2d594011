package models

import "time"

// AppSettings is a singleton row (ID is always SettingsID) created with
// defaults on first run.
type AppSettings struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	CompanyName    string    `json:"companyName"`
	CompanyAddress string    `json:"companyAddress"`
	CompanyNIP     string    `json:"companyNip,omitempty"`
	CompanyPhone   string    `json:"companyPhone,omitempty"`
	CompanyEmail   string    `json:"companyEmail,omitempty"`
	DefaultVATRate float64   `gorm:"not null" json:"defaultVatRate"` // percent
	QuoteValidDays int       `gorm:"not null" json:"quoteValidDays"`
	Currency       string    `gorm:"not null" json:"currency"`
	DateFormat     string    `gorm:"not null" json:"dateFormat"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID uint = 1

// DefaultSettings are the first-run values.
func DefaultSettings() AppSettings {
	return AppSettings{
		ID:             SettingsID,
		DefaultVATRate: 23,
		QuoteValidDays: 30,
		Currency:       "PLN",
		DateFormat:     "DD MMM YYYY",
	}
}
