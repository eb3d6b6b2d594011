package handlers

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/services"
)

type ReportsHandler struct {
	Svc *services.ReportsService
}

func NewReportsHandler(svc *services.ReportsService) *ReportsHandler {
	return &ReportsHandler{Svc: svc}
}

// Summary: GET /reports
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Svc.Summary()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}
