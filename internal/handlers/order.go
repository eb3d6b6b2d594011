package handlers

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/services"
)

type OrderHandler struct {
	Svc   *services.OrderService
	Costs *services.CostService
}

func NewOrderHandler(svc *services.OrderService, costs *services.CostService) *OrderHandler {
	return &OrderHandler{Svc: svc, Costs: costs}
}

// List: GET /orders?status=&client_id=&active=1
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := services.OrderFilter{
		Status:   models.OrderStatus(q.Get("status")),
		ClientID: q.Get("client_id"),
		Active:   q.Get("active") == "1",
	}
	orders, err := h.Svc.List(f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": len(orders)})
}

// Get: GET /orders/get?id=
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	order, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Create: POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// Update: POST /orders/update?id=
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p services.OrderPatch
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Svc.Update(id, p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// UpdateStatus: POST /orders/status?id=
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.UpdateStatus(id, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UpdateTasks: POST /orders/tasks?id=
func (h *OrderHandler) UpdateTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		Tasks []models.ChecklistItem `json:"tasks"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.UpdateTasks(id, req.Tasks); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /orders/delete?id=
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Summary: GET /orders/summary?id= — the financial view: the three cost
// lists plus the aggregate.
func (h *OrderHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	financials, err := h.Costs.Aggregate(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	materials, err := h.Costs.MaterialsForOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	labor, err := h.Costs.LaborForOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	other, err := h.Costs.OtherForOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"financials": financials,
		"materials":  materials,
		"labor":      labor,
		"otherCosts": other,
	})
}
