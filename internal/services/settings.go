package services

import (
	"errors"

	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/validation"
	"gorm.io/gorm"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService { return &SettingsService{DB: db} }

// Get returns the singleton settings row, creating the defaults if the
// bootstrap has not run (or the row was wiped).
func (s *SettingsService) Get() (models.AppSettings, error) {
	var settings models.AppSettings
	err := s.DB.First(&settings, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		if err := s.DB.Create(&settings).Error; err != nil {
			return models.AppSettings{}, StoreErr("settings_create", err)
		}
		return settings, nil
	}
	if err != nil {
		return models.AppSettings{}, StoreErr("settings_load", err)
	}
	return settings, nil
}

type SettingsInput struct {
	CompanyName    string  `json:"companyName"`
	CompanyAddress string  `json:"companyAddress"`
	CompanyNIP     string  `json:"companyNip"`
	CompanyPhone   string  `json:"companyPhone"`
	CompanyEmail   string  `json:"companyEmail"`
	DefaultVATRate float64 `json:"defaultVatRate"`
	QuoteValidDays int     `json:"quoteValidDays"`
	Currency       string  `json:"currency"`
	DateFormat     string  `json:"dateFormat"`
}

func (s *SettingsService) Update(in SettingsInput) (models.AppSettings, error) {
	v := validation.Violations{}
	validation.NonNegativeFloat("defaultVatRate", in.DefaultVATRate, v)
	validation.PositiveInt("quoteValidDays", in.QuoteValidDays, v)
	validation.Required("currency", in.Currency, v)
	if !v.Empty() {
		return models.AppSettings{}, ValidationErr(v)
	}
	settings, err := s.Get()
	if err != nil {
		return models.AppSettings{}, err
	}
	settings.CompanyName = in.CompanyName
	settings.CompanyAddress = in.CompanyAddress
	settings.CompanyNIP = in.CompanyNIP
	settings.CompanyPhone = in.CompanyPhone
	settings.CompanyEmail = in.CompanyEmail
	settings.DefaultVATRate = in.DefaultVATRate
	settings.QuoteValidDays = in.QuoteValidDays
	settings.Currency = in.Currency
	if in.DateFormat != "" {
		settings.DateFormat = in.DateFormat
	}
	if err := s.DB.Save(&settings).Error; err != nil {
		return models.AppSettings{}, StoreErr("settings_update", err)
	}
	return settings, nil
}
