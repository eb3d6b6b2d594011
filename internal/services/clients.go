package services

import (
	"errors"
	"strings"

	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/validation"
	"gorm.io/gorm"
)

type ClientService struct {
	DB *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService { return &ClientService{DB: db} }

type ClientInput struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	NIP     string `json:"nip"`
	Notes   string `json:"notes"`
}

func (s *ClientService) Create(in ClientInput) (*models.Client, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("phone", in.Phone, v)
	if !v.Empty() {
		return nil, ValidationErr(v)
	}
	client := models.Client{
		Name:    in.Name,
		Company: in.Company,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		NIP:     in.NIP,
		Notes:   in.Notes,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&client).Error; err != nil {
			return StoreErr("client_create", err)
		}
		return recordActivity(tx, models.ActivityClient, models.ActionCreated, client.ID, client.Name)
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

type ClientPatch struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	NIP     *string `json:"nip"`
	Notes   *string `json:"notes"`
}

func (s *ClientService) Update(id string, p ClientPatch) (*models.Client, error) {
	v := validation.Violations{}
	if p.Name != nil {
		validation.Required("name", *p.Name, v)
	}
	if p.Phone != nil {
		validation.Required("phone", *p.Phone, v)
	}
	if !v.Empty() {
		return nil, ValidationErr(v)
	}
	var client models.Client
	if err := s.DB.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("client")
		}
		return nil, StoreErr("client_load", err)
	}
	if p.Name != nil {
		client.Name = *p.Name
	}
	if p.Company != nil {
		client.Company = *p.Company
	}
	if p.Email != nil {
		client.Email = *p.Email
	}
	if p.Phone != nil {
		client.Phone = *p.Phone
	}
	if p.Address != nil {
		client.Address = *p.Address
	}
	if p.NIP != nil {
		client.NIP = *p.NIP
	}
	if p.Notes != nil {
		client.Notes = *p.Notes
	}
	if err := s.DB.Save(&client).Error; err != nil {
		return nil, StoreErr("client_update", err)
	}
	return &client, nil
}

// Delete removes the client only; orders and quotes keep their clientId
// reference (no cascade).
func (s *ClientService) Delete(id string) error {
	var client models.Client
	err := s.DB.First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return StoreErr("client_load", err)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Client{}, "id = ?", id).Error; err != nil {
			return StoreErr("client_delete", err)
		}
		return recordActivity(tx, models.ActivityClient, models.ActionDeleted, id, client.Name)
	})
}

func (s *ClientService) Get(id string) (*models.Client, error) {
	var client models.Client
	if err := s.DB.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("client")
		}
		return nil, StoreErr("client_load", err)
	}
	return &client, nil
}

// List returns all clients, or those matching q against name, phone or
// email (case-insensitive substring).
func (s *ClientService) List(q string) ([]models.Client, error) {
	dbq := s.DB.Model(&models.Client{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR phone LIKE ? OR lower(email) LIKE ?", like, "%"+q+"%", like)
	}
	var clients []models.Client
	if err := dbq.Order("name asc").Find(&clients).Error; err != nil {
		return nil, StoreErr("client_list", err)
	}
	return clients, nil
}
