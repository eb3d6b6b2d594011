package handlers

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/models"
	"github.com/pkaczor/serwisapp/internal/services"
)

type QuoteHandler struct {
	Svc *services.QuoteService
}

func NewQuoteHandler(svc *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{Svc: svc}
}

// List: GET /quotes?status=&client_id=
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quotes, err := h.Svc.List(services.QuoteFilter{
		Status:   models.QuoteStatus(q.Get("status")),
		ClientID: q.Get("client_id"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": quotes, "total": len(quotes)})
}

// Get: GET /quotes/get?id=
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	quote, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

// Create: POST /quotes
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.QuoteInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	quote, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

// Update: POST /quotes/update?id=
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p services.QuotePatch
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	quote, err := h.Svc.Update(id, p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

// UpdateStatus: POST /quotes/status?id=
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.QuoteStatus `json:"status"`
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

// Delete: POST /quotes/delete?id=
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
