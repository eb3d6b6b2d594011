package handlers

import (
	"net/http"
	"strconv"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/services"
)

type ActivityHandler struct {
	Svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Svc: svc}
}

// List: GET /activities?limit=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	acts, err := h.Svc.Recent(limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": acts, "total": len(acts)})
}
