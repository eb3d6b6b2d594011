package services

import (
	"errors"
	"time"

	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService { return &OrderService{DB: db} }

type OrderInput struct {
	ClientID    string                 `json:"clientId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      models.OrderStatus     `json:"status"`
	Value       float64                `json:"value"`
	StartDate   *time.Time             `json:"startDate"`
	EndDate     *time.Time             `json:"endDate"`
	Address     string                 `json:"address"`
	Notes       string                 `json:"notes"`
	Tasks       []models.ChecklistItem `json:"tasks"`
	Images      *models.ImageSet       `json:"images"`
}

// Create assigns the order number inside the creating transaction and logs
// the activity with the order title as the snapshot name. EndDate is not
// compared against StartDate; an earlier end date is stored as given.
func (s *OrderService) Create(in OrderInput) (*models.Order, error) {
	v := validation.Violations{}
	validation.Required("clientId", in.ClientID, v)
	validation.Required("title", in.Title, v)
	if in.StartDate == nil {
		v["startDate"] = "required"
	}
	validation.NonNegativeFloat("value", in.Value, v)
	if in.Status != "" && !models.ValidOrderStatus(in.Status) {
		v["status"] = "unknown_status"
	}
	if !v.Empty() {
		return nil, ValidationErr(v)
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusNew
	}
	images := models.ImageSet{}
	if in.Images != nil {
		images = *in.Images
	}
	order := models.Order{
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Value:       in.Value,
		StartDate:   *in.StartDate,
		EndDate:     in.EndDate,
		Address:     in.Address,
		Notes:       in.Notes,
		Tasks:       datatypes.NewJSONSlice(in.Tasks),
		Images:      datatypes.NewJSONType(images),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := NextOrderNumber(tx, time.Now())
		if err != nil {
			return err
		}
		order.OrderNumber = number
		if err := tx.Create(&order).Error; err != nil {
			return StoreErr("order_create", err)
		}
		return recordActivity(tx, models.ActivityOrder, models.ActionCreated, order.ID, order.Title)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderPatch merges only provided fields. OrderNumber is never patchable.
type OrderPatch struct {
	ClientID    *string                 `json:"clientId"`
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *models.OrderStatus     `json:"status"`
	Value       *float64                `json:"value"`
	StartDate   *time.Time              `json:"startDate"`
	EndDate     *time.Time              `json:"endDate"`
	Address     *string                 `json:"address"`
	Notes       *string                 `json:"notes"`
	Tasks       []models.ChecklistItem  `json:"tasks"`
	Images      *models.ImageSet        `json:"images"`
}

func (s *OrderService) Update(id string, p OrderPatch) (*models.Order, error) {
	v := validation.Violations{}
	if p.ClientID != nil {
		validation.Required("clientId", *p.ClientID, v)
	}
	if p.Title != nil {
		validation.Required("title", *p.Title, v)
	}
	if p.Value != nil {
		validation.NonNegativeFloat("value", *p.Value, v)
	}
	if p.Status != nil && !models.ValidOrderStatus(*p.Status) {
		v["status"] = "unknown_status"
	}
	if !v.Empty() {
		return nil, ValidationErr(v)
	}

	var order models.Order
	if err := s.DB.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("order")
		}
		return nil, StoreErr("order_load", err)
	}
	if p.ClientID != nil {
		order.ClientID = *p.ClientID
	}
	if p.Title != nil {
		order.Title = *p.Title
	}
	if p.Description != nil {
		order.Description = *p.Description
	}
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.Value != nil {
		order.Value = *p.Value
	}
	if p.StartDate != nil {
		order.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		order.EndDate = p.EndDate
	}
	if p.Address != nil {
		order.Address = *p.Address
	}
	if p.Notes != nil {
		order.Notes = *p.Notes
	}
	if p.Tasks != nil {
		order.Tasks = datatypes.NewJSONSlice(p.Tasks)
	}
	if p.Images != nil {
		order.Images = datatypes.NewJSONType(*p.Images)
	}
	if err := s.DB.Save(&order).Error; err != nil {
		return nil, StoreErr("order_update", err)
	}
	return &order, nil
}

func (s *OrderService) UpdateStatus(id string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return ValidationErr(validation.Violations{"status": "unknown_status"})
	}
	res := s.DB.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return StoreErr("order_status", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundErr("order")
	}
	return nil
}

// UpdateTasks replaces the checklist wholesale.
func (s *OrderService) UpdateTasks(id string, tasks []models.ChecklistItem) error {
	res := s.DB.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]any{"tasks": datatypes.NewJSONSlice(tasks), "updated_at": time.Now()})
	if res.Error != nil {
		return StoreErr("order_tasks", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundErr("order")
	}
	return nil
}

// Delete removes only the order row; cost entries and activities referencing
// it are orphaned, not cascaded. Deleting an absent id is a no-op.
func (s *OrderService) Delete(id string) error {
	var order models.Order
	err := s.DB.First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return StoreErr("order_load", err)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Order{}, "id = ?", id).Error; err != nil {
			return StoreErr("order_delete", err)
		}
		return recordActivity(tx, models.ActivityOrder, models.ActionDeleted, id, order.Title)
	})
}

func (s *OrderService) Get(id string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("order")
		}
		return nil, StoreErr("order_load", err)
	}
	return &order, nil
}

type OrderFilter struct {
	Status   models.OrderStatus
	ClientID string
	Active   bool
}

func (s *OrderService) List(f OrderFilter) ([]models.Order, error) {
	q := s.DB.Model(&models.Order{})
	if f.Active {
		q = q.Where("status IN ?", models.ActiveOrderStatuses)
	} else if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	var orders []models.Order
	if err := q.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, StoreErr("order_list", err)
	}
	return orders, nil
}
