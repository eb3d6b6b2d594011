package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/validation"
	"gorm.io/gorm"
)

// QuoteService owns quote documents and their derived financial rollup. The
// rollup (Subtotal/VATTotal/Total) and every item's Total are recomputed on
// create and on any update that touches the item list, inside the same
// transaction as the write, so a persisted quote is never stale relative to
// its items. Updates that do not touch items leave the rollup untouched.
type QuoteService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{DB: db, Settings: NewSettingsService(db)}
}

// QuoteItemInput carries one line item. VATRate is a pointer so "omitted"
// can fall back to the settings default without overriding an explicit 0.
type QuoteItemInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	UnitPrice   float64  `json:"unitPrice"`
	VATRate     *float64 `json:"vatRate"`
}

type QuoteInput struct {
	ClientID   string             `json:"clientId"`
	OrderID    string             `json:"orderId"`
	Status     models.QuoteStatus `json:"status"`
	Items      []QuoteItemInput   `json:"items"`
	ValidUntil *time.Time         `json:"validUntil"`
	Notes      string             `json:"notes"`
}

func validateQuoteItems(items []QuoteItemInput, v validation.Violations) {
	if len(items) == 0 {
		v["items"] = "required"
		return
	}
	for i, it := range items {
		validation.Required(fmt.Sprintf("items[%d].name", i), it.Name, v)
		validation.PositiveFloat(fmt.Sprintf("items[%d].quantity", i), it.Quantity, v)
		validation.NonNegativeFloat(fmt.Sprintf("items[%d].unitPrice", i), it.UnitPrice, v)
		if it.VATRate != nil {
			validation.NonNegativeFloat(fmt.Sprintf("items[%d].vatRate", i), *it.VATRate, v)
		}
	}
}

func buildQuoteItems(items []QuoteItemInput, defaultVAT float64) []models.QuoteItem {
	out := make([]models.QuoteItem, 0, len(items))
	for _, it := range items {
		vat := defaultVAT
		if it.VATRate != nil {
			vat = *it.VATRate
		}
		out = append(out, models.QuoteItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			VATRate:     vat,
			Total:       QuoteItemTotal(it.Quantity, it.UnitPrice, vat),
		})
	}
	return out
}

// Rollup is the document-level sum over line items: Subtotal is net,
// VATTotal the summed tax, Total the gross. Intermediate sums are not
// rounded.
type Rollup struct {
	Subtotal float64
	VATTotal float64
	Total    float64
}

func ComputeRollup(items []models.QuoteItem) Rollup {
	var r Rollup
	for _, it := range items {
		net := it.Quantity * it.UnitPrice
		r.Subtotal += net
		r.VATTotal += VAT(net, it.VATRate)
	}
	r.Total = r.Subtotal + r.VATTotal
	return r
}

func (s *QuoteService) Create(in QuoteInput) (*models.Quote, error) {
	v := validation.Violations{}
	validation.Required("clientId", in.ClientID, v)
	validateQuoteItems(in.Items, v)
	if in.Status != "" && !models.ValidQuoteStatus(in.Status) {
		v["status"] = "unknown_status"
	}
	if !v.Empty() {
		return nil, ValidationErr(v)
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}
	items := buildQuoteItems(in.Items, settings.DefaultVATRate)
	rollup := ComputeRollup(items)

	status := in.Status
	if status == "" {
		status = models.QuoteStatusDraft
	}
	now := time.Now()
	validUntil := in.ValidUntil
	if validUntil == nil {
		t := now.AddDate(0, 0, settings.QuoteValidDays)
		validUntil = &t
	}

	quote := models.Quote{
		ClientID:   in.ClientID,
		OrderID:    in.OrderID,
		Status:     status,
		Items:      items,
		Subtotal:   rollup.Subtotal,
		VATTotal:   rollup.VATTotal,
		Total:      rollup.Total,
		ValidUntil: validUntil,
		Notes:      in.Notes,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := NextQuoteNumber(tx, now)
		if err != nil {
			return err
		}
		quote.QuoteNumber = number
		if err := tx.Create(&quote).Error; err != nil {
			return StoreErr("quote_create", err)
		}
		return recordActivity(tx, models.ActivityQuote, models.ActionCreated, quote.ID, quote.QuoteNumber)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// QuotePatch merges only provided fields. A nil Items slice means the item
// list is untouched and the stored rollup must survive the update as-is.
type QuotePatch struct {
	ClientID   *string             `json:"clientId"`
	OrderID    *string             `json:"orderId"`
	Status     *models.QuoteStatus `json:"status"`
	Items      []QuoteItemInput    `json:"items"`
	ValidUntil *time.Time          `json:"validUntil"`
	Notes      *string             `json:"notes"`
}

func (s *QuoteService) Update(id string, p QuotePatch) (*models.Quote, error) {
	v := validation.Violations{}
	if p.ClientID != nil {
		validation.Required("clientId", *p.ClientID, v)
	}
	if p.Status != nil && !models.ValidQuoteStatus(*p.Status) {
		v["status"] = "unknown_status"
	}
	if p.Items != nil {
		validateQuoteItems(p.Items, v)
	}
	if !v.Empty() {
		return nil, ValidationErr(v)
	}

	var quote models.Quote
	if err := s.DB.Preload("Items").First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("quote")
		}
		return nil, StoreErr("quote_load", err)
	}

	if p.ClientID != nil {
		quote.ClientID = *p.ClientID
	}
	if p.OrderID != nil {
		quote.OrderID = *p.OrderID
	}
	if p.Status != nil {
		quote.Status = *p.Status
	}
	if p.ValidUntil != nil {
		quote.ValidUntil = p.ValidUntil
	}
	if p.Notes != nil {
		quote.Notes = *p.Notes
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if p.Items != nil {
			settings, err := s.Settings.Get()
			if err != nil {
				return err
			}
			items := buildQuoteItems(p.Items, settings.DefaultVATRate)
			rollup := ComputeRollup(items)
			if err := tx.Where("quote_id = ?", quote.ID).Delete(&models.QuoteItem{}).Error; err != nil {
				return StoreErr("quote_items_delete", err)
			}
			for i := range items {
				items[i].QuoteID = quote.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return StoreErr("quote_items_create", err)
			}
			quote.Items = items
			quote.Subtotal = rollup.Subtotal
			quote.VATTotal = rollup.VATTotal
			quote.Total = rollup.Total
		}
		// Omit(Items): children were written explicitly above
		if err := tx.Omit("Items").Save(&quote).Error; err != nil {
			return StoreErr("quote_update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateStatus is the dedicated status operation; it bumps UpdatedAt and
// leaves everything else, rollup included, alone.
func (s *QuoteService) UpdateStatus(id string, status models.QuoteStatus) error {
	if !models.ValidQuoteStatus(status) {
		return ValidationErr(validation.Violations{"status": "unknown_status"})
	}
	res := s.DB.Model(&models.Quote{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return StoreErr("quote_status", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundErr("quote")
	}
	return nil
}

// Delete removes the quote and its items; deleting an absent id is a no-op.
func (s *QuoteService) Delete(id string) error {
	var quote models.Quote
	err := s.DB.First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return StoreErr("quote_load", err)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&models.QuoteItem{}).Error; err != nil {
			return StoreErr("quote_items_delete", err)
		}
		if err := tx.Delete(&models.Quote{}, "id = ?", id).Error; err != nil {
			return StoreErr("quote_delete", err)
		}
		return recordActivity(tx, models.ActivityQuote, models.ActionDeleted, id, quote.QuoteNumber)
	})
}

func (s *QuoteService) Get(id string) (*models.Quote, error) {
	var quote models.Quote
	if err := s.DB.Preload("Items").First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("quote")
		}
		return nil, StoreErr("quote_load", err)
	}
	return &quote, nil
}

type QuoteFilter struct {
	Status   models.QuoteStatus
	ClientID string
}

func (s *QuoteService) List(f QuoteFilter) ([]models.Quote, error) {
	q := s.DB.Preload("Items")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	var quotes []models.Quote
	if err := q.Order("created_at desc").Find(&quotes).Error; err != nil {
		return nil, StoreErr("quote_list", err)
	}
	return quotes, nil
}
