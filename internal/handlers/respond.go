package handlers

import (
	"errors"
	"net/http"

	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses so a
// client can tell a correctable validation failure from a store fault.
func writeServiceError(w http.ResponseWriter, err error) {
	var e *services.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case services.KindValidation:
			httpx.JSONError(w, http.StatusBadRequest, e.Msg, e.Violations)
		case services.KindNotFound:
			httpx.JSONError(w, http.StatusNotFound, e.Msg, nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, e.Msg, nil)
		}
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return "", false
	}
	return id, true
}
