package handlers

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/services"
)

type ClientHandler struct {
	Svc *services.ClientService
}

func NewClientHandler(svc *services.ClientService) *ClientHandler {
	return &ClientHandler{Svc: svc}
}

// List: GET /clients?q=
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Svc.List(r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Get: GET /clients/get?id=
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	client, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ClientInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	client, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Update: POST /clients/update?id=
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p services.ClientPatch
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	client, err := h.Svc.Update(id, p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: POST /clients/delete?id=
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
