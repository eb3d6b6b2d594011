package handlers

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/services"
)

// CostHandler exposes the cost ledger. Adds take ?order_id=, updates and
// deletes take ?id=, lists take ?order_id=.
type CostHandler struct {
	Svc *services.CostService
}

func NewCostHandler(svc *services.CostService) *CostHandler {
	return &CostHandler{Svc: svc}
}

func requireOrderID(w http.ResponseWriter, r *http.Request) (string, bool) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_order_id", nil)
		return "", false
	}
	return orderID, true
}

// Materials

func (h *CostHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requireOrderID(w, r)
	if !ok {
		return
	}
	items, err := h.Svc.MaterialsForOrder(orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *CostHandler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requireOrderID(w, r)
	if !ok {
		return
	}
	var in services.MaterialInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	id, err := h.Svc.AddMaterial(orderID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CostHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p services.MaterialPatch
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.UpdateMaterial(id, p); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CostHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteMaterial(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Labor

func (h *CostHandler) ListLabor(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requireOrderID(w, r)
	if !ok {
		return
	}
	items, err := h.Svc.LaborForOrder(orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *CostHandler) AddLabor(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requireOrderID(w, r)
	if !ok {
		return
	}
	var in services.LaborInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	id, err := h.Svc.AddLabor(orderID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CostHandler) UpdateLabor(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p services.LaborPatch
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.UpdateLabor(id, p); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CostHandler) DeleteLabor(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteLabor(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Other costs

func (h *CostHandler) ListOther(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requireOrderID(w, r)
	if !ok {
		return
	}
	items, err := h.Svc.OtherForOrder(orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *CostHandler) AddOther(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requireOrderID(w, r)
	if !ok {
		return
	}
	var in services.OtherInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	id, err := h.Svc.AddOther(orderID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CostHandler) UpdateOther(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p services.OtherPatch
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.UpdateOther(id, p); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CostHandler) DeleteOther(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteOther(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
