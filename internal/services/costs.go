package services

import (
	"errors"

	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/validation"
	"gorm.io/gorm"
)

// CostService maintains the per-order cost ledger (materials, labor, other
// costs). Every write goes through a constructor or patch that recomputes
// the entry's denormalized Total from its own fields; raw field setters are
// never exposed, so a stored Total always equals the formula for its kind.
type CostService struct {
	DB *gorm.DB
}

func NewCostService(db *gorm.DB) *CostService { return &CostService{DB: db} }

type MaterialInput struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
	VATRate   float64 `json:"vatRate"`
}

type LaborInput struct {
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	RatePerHour float64 `json:"ratePerHour"`
}

type OtherInput struct {
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// orderExists guards the Add operations; cost entries must not be created
// against a missing parent.
func (s *CostService) orderExists(orderID string) error {
	var count int64
	if err := s.DB.Model(&models.Order{}).Where("id = ?", orderID).Limit(1).Count(&count).Error; err != nil {
		return StoreErr("order_lookup", err)
	}
	if count == 0 {
		return NotFoundErr("order")
	}
	return nil
}

func (s *CostService) AddMaterial(orderID string, in MaterialInput) (string, error) {
	v := validation.Violations{}
	validation.Required("orderId", orderID, v)
	validation.Required("name", in.Name, v)
	validation.PositiveFloat("quantity", in.Quantity, v)
	validation.NonNegativeFloat("unitPrice", in.UnitPrice, v)
	validation.NonNegativeFloat("vatRate", in.VATRate, v)
	if !v.Empty() {
		return "", ValidationErr(v)
	}
	if err := s.orderExists(orderID); err != nil {
		return "", err
	}
	entry := models.MaterialCost{
		OrderID:   orderID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		UnitPrice: in.UnitPrice,
		VATRate:   in.VATRate,
		Total:     MaterialTotal(in.Quantity, in.UnitPrice, in.VATRate),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return "", StoreErr("material_create", err)
	}
	return entry.ID, nil
}

func (s *CostService) AddLabor(orderID string, in LaborInput) (string, error) {
	v := validation.Violations{}
	validation.Required("orderId", orderID, v)
	validation.Required("description", in.Description, v)
	validation.PositiveFloat("hours", in.Hours, v)
	validation.NonNegativeFloat("ratePerHour", in.RatePerHour, v)
	if !v.Empty() {
		return "", ValidationErr(v)
	}
	if err := s.orderExists(orderID); err != nil {
		return "", err
	}
	entry := models.LaborCost{
		OrderID:     orderID,
		Description: in.Description,
		Hours:       in.Hours,
		RatePerHour: in.RatePerHour,
		Total:       LaborTotal(in.Hours, in.RatePerHour),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return "", StoreErr("labor_create", err)
	}
	return entry.ID, nil
}

func (s *CostService) AddOther(orderID string, in OtherInput) (string, error) {
	v := validation.Violations{}
	validation.Required("orderId", orderID, v)
	validation.Required("description", in.Description, v)
	validation.PositiveFloat("cost", in.Cost, v)
	if !v.Empty() {
		return "", ValidationErr(v)
	}
	if err := s.orderExists(orderID); err != nil {
		return "", err
	}
	entry := models.OtherCost{
		OrderID:     orderID,
		Description: in.Description,
		Cost:        in.Cost,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return "", StoreErr("other_cost_create", err)
	}
	return entry.ID, nil
}

// Patch types merge only the fields that were provided; the merged entry's
// Total is recomputed before the write.

type MaterialPatch struct {
	Name      *string  `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unitPrice"`
	VATRate   *float64 `json:"vatRate"`
}

type LaborPatch struct {
	Description *string  `json:"description"`
	Hours       *float64 `json:"hours"`
	RatePerHour *float64 `json:"ratePerHour"`
}

type OtherPatch struct {
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
}

func (s *CostService) UpdateMaterial(id string, p MaterialPatch) error {
	v := validation.Violations{}
	if p.Name != nil {
		validation.Required("name", *p.Name, v)
	}
	if p.Quantity != nil {
		validation.PositiveFloat("quantity", *p.Quantity, v)
	}
	if p.UnitPrice != nil {
		validation.NonNegativeFloat("unitPrice", *p.UnitPrice, v)
	}
	if p.VATRate != nil {
		validation.NonNegativeFloat("vatRate", *p.VATRate, v)
	}
	if !v.Empty() {
		return ValidationErr(v)
	}
	var entry models.MaterialCost
	if err := s.DB.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("material")
		}
		return StoreErr("material_load", err)
	}
	if p.Name != nil {
		entry.Name = *p.Name
	}
	if p.Quantity != nil {
		entry.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		entry.Unit = *p.Unit
	}
	if p.UnitPrice != nil {
		entry.UnitPrice = *p.UnitPrice
	}
	if p.VATRate != nil {
		entry.VATRate = *p.VATRate
	}
	entry.Total = MaterialTotal(entry.Quantity, entry.UnitPrice, entry.VATRate)
	if err := s.DB.Save(&entry).Error; err != nil {
		return StoreErr("material_update", err)
	}
	return nil
}

func (s *CostService) UpdateLabor(id string, p LaborPatch) error {
	v := validation.Violations{}
	if p.Description != nil {
		validation.Required("description", *p.Description, v)
	}
	if p.Hours != nil {
		validation.PositiveFloat("hours", *p.Hours, v)
	}
	if p.RatePerHour != nil {
		validation.NonNegativeFloat("ratePerHour", *p.RatePerHour, v)
	}
	if !v.Empty() {
		return ValidationErr(v)
	}
	var entry models.LaborCost
	if err := s.DB.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("labor")
		}
		return StoreErr("labor_load", err)
	}
	if p.Description != nil {
		entry.Description = *p.Description
	}
	if p.Hours != nil {
		entry.Hours = *p.Hours
	}
	if p.RatePerHour != nil {
		entry.RatePerHour = *p.RatePerHour
	}
	entry.Total = LaborTotal(entry.Hours, entry.RatePerHour)
	if err := s.DB.Save(&entry).Error; err != nil {
		return StoreErr("labor_update", err)
	}
	return nil
}

func (s *CostService) UpdateOther(id string, p OtherPatch) error {
	v := validation.Violations{}
	if p.Description != nil {
		validation.Required("description", *p.Description, v)
	}
	if p.Cost != nil {
		validation.PositiveFloat("cost", *p.Cost, v)
	}
	if !v.Empty() {
		return ValidationErr(v)
	}
	var entry models.OtherCost
	if err := s.DB.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("other_cost")
		}
		return StoreErr("other_cost_load", err)
	}
	if p.Description != nil {
		entry.Description = *p.Description
	}
	if p.Cost != nil {
		entry.Cost = *p.Cost
	}
	if err := s.DB.Save(&entry).Error; err != nil {
		return StoreErr("other_cost_update", err)
	}
	return nil
}

// Deletes are unconditional; removing an id that does not exist is a no-op.

func (s *CostService) DeleteMaterial(id string) error {
	if err := s.DB.Delete(&models.MaterialCost{}, "id = ?", id).Error; err != nil {
		return StoreErr("material_delete", err)
	}
	return nil
}

func (s *CostService) DeleteLabor(id string) error {
	if err := s.DB.Delete(&models.LaborCost{}, "id = ?", id).Error; err != nil {
		return StoreErr("labor_delete", err)
	}
	return nil
}

func (s *CostService) DeleteOther(id string) error {
	if err := s.DB.Delete(&models.OtherCost{}, "id = ?", id).Error; err != nil {
		return StoreErr("other_cost_delete", err)
	}
	return nil
}

func (s *CostService) MaterialsForOrder(orderID string) ([]models.MaterialCost, error) {
	var out []models.MaterialCost
	if err := s.DB.Where("order_id = ?", orderID).Find(&out).Error; err != nil {
		return nil, StoreErr("material_list", err)
	}
	return out, nil
}

func (s *CostService) LaborForOrder(orderID string) ([]models.LaborCost, error) {
	var out []models.LaborCost
	if err := s.DB.Where("order_id = ?", orderID).Find(&out).Error; err != nil {
		return nil, StoreErr("labor_list", err)
	}
	return out, nil
}

func (s *CostService) OtherForOrder(orderID string) ([]models.OtherCost, error) {
	var out []models.OtherCost
	if err := s.DB.Where("order_id = ?", orderID).Find(&out).Error; err != nil {
		return nil, StoreErr("other_cost_list", err)
	}
	return out, nil
}

// OrderFinancials is the aggregate view over an order's three cost lists and
// its expected revenue. Nothing here is cached; callers recompute after every
// ledger mutation.
type OrderFinancials struct {
	Revenue        float64 `json:"revenue"`
	TotalMaterials float64 `json:"totalMaterials"`
	TotalLabor     float64 `json:"totalLabor"`
	TotalOther     float64 `json:"totalOther"`
	TotalCosts     float64 `json:"totalCosts"`
	Profit         float64 `json:"profit"`
	Margin         float64 `json:"margin"`
	Markup         float64 `json:"markup"`
}

func (s *CostService) Aggregate(orderID string) (OrderFinancials, error) {
	var order models.Order
	if err := s.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderFinancials{}, NotFoundErr("order")
		}
		return OrderFinancials{}, StoreErr("order_load", err)
	}
	materials, err := s.MaterialsForOrder(orderID)
	if err != nil {
		return OrderFinancials{}, err
	}
	labor, err := s.LaborForOrder(orderID)
	if err != nil {
		return OrderFinancials{}, err
	}
	other, err := s.OtherForOrder(orderID)
	if err != nil {
		return OrderFinancials{}, err
	}
	return AggregateFinancials(order.Value, materials, labor, other), nil
}

// AggregateFinancials is the pure aggregation over already-loaded lists.
func AggregateFinancials(revenue float64, materials []models.MaterialCost, labor []models.LaborCost, other []models.OtherCost) OrderFinancials {
	f := OrderFinancials{Revenue: revenue}
	for _, m := range materials {
		f.TotalMaterials += m.Total
	}
	for _, l := range labor {
		f.TotalLabor += l.Total
	}
	for _, o := range other {
		f.TotalOther += o.Cost
	}
	f.TotalCosts = f.TotalMaterials + f.TotalLabor + f.TotalOther
	f.Profit = revenue - f.TotalCosts
	f.Margin = Margin(revenue, f.Profit)
	f.Markup = Markup(f.TotalCosts, f.Profit)
	return f
}
