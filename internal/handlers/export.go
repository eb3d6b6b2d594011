package handlers

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/db"
	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/models"
	"gorm.io/gorm"
)

// ExportHandler moves whole-database JSON snapshots in and out. Import
// resets the store first and bulk-inserts without collision checking;
// duplicate ids in the snapshot are the caller's responsibility.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(conn *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: conn}
}

type snapshot struct {
	Clients    []models.Client       `json:"clients"`
	Orders     []models.Order        `json:"orders"`
	Materials  []models.MaterialCost `json:"materials"`
	Labor      []models.LaborCost    `json:"labor"`
	OtherCosts []models.OtherCost    `json:"otherCosts"`
	Quotes     []models.Quote        `json:"quotes"`
	Activities []models.Activity     `json:"activities"`
	Settings   []models.AppSettings  `json:"settings"`
}

// Export: GET /export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var snap snapshot
	loads := []struct {
		dst   any
		query *gorm.DB
	}{
		{&snap.Clients, h.DB.Model(&models.Client{})},
		{&snap.Orders, h.DB.Model(&models.Order{})},
		{&snap.Materials, h.DB.Model(&models.MaterialCost{})},
		{&snap.Labor, h.DB.Model(&models.LaborCost{})},
		{&snap.OtherCosts, h.DB.Model(&models.OtherCost{})},
		{&snap.Activities, h.DB.Model(&models.Activity{})},
		{&snap.Settings, h.DB.Model(&models.AppSettings{})},
	}
	for _, l := range loads {
		if err := l.query.Find(l.dst).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
			return
		}
	}
	if err := h.DB.Preload("Items").Find(&snap.Quotes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="serwis-export.json"`)
	httpx.JSON(w, http.StatusOK, snap)
}

// Import: POST /import
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snap snapshot
	if err := httpx.Decode(r, &snap); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := db.Reset(h.DB); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "reset_failed", nil)
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if len(snap.Clients) > 0 {
			if err := tx.Create(&snap.Clients).Error; err != nil {
				return err
			}
		}
		if len(snap.Orders) > 0 {
			if err := tx.Create(&snap.Orders).Error; err != nil {
				return err
			}
		}
		if len(snap.Materials) > 0 {
			if err := tx.Create(&snap.Materials).Error; err != nil {
				return err
			}
		}
		if len(snap.Labor) > 0 {
			if err := tx.Create(&snap.Labor).Error; err != nil {
				return err
			}
		}
		if len(snap.OtherCosts) > 0 {
			if err := tx.Create(&snap.OtherCosts).Error; err != nil {
				return err
			}
		}
		if len(snap.Quotes) > 0 {
			if err := tx.Create(&snap.Quotes).Error; err != nil {
				return err
			}
		}
		if len(snap.Activities) > 0 {
			if err := tx.Create(&snap.Activities).Error; err != nil {
				return err
			}
		}
		if len(snap.Settings) > 0 {
			// replace the bootstrap row with the imported one
			if err := tx.Where("id = ?", models.SettingsID).Delete(&models.AppSettings{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&snap.Settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "import_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
