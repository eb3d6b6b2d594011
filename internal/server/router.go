package server

import (
	"net/http"

	"github.com/pkaczor/serwisapp/internal/handlers"
	"github.com/pkaczor/serwisapp/internal/httpx"
	"github.com/pkaczor/serwisapp/internal/services"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// lightweight store check; details stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	costSvc := services.NewCostService(db)

	// Client endpoints
	ch := handlers.NewClientHandler(services.NewClientService(db))
	mux.HandleFunc("/clients", listCreate(ch.List, ch.Create))
	mux.HandleFunc("/clients/get", get(ch.Get))
	mux.HandleFunc("/clients/update", post(ch.Update))
	mux.HandleFunc("/clients/delete", post(ch.Delete))

	// Order endpoints
	oh := handlers.NewOrderHandler(services.NewOrderService(db), costSvc)
	mux.HandleFunc("/orders", listCreate(oh.List, oh.Create))
	mux.HandleFunc("/orders/get", get(oh.Get))
	mux.HandleFunc("/orders/update", post(oh.Update))
	mux.HandleFunc("/orders/status", post(oh.UpdateStatus))
	mux.HandleFunc("/orders/tasks", post(oh.UpdateTasks))
	mux.HandleFunc("/orders/delete", post(oh.Delete))
	mux.HandleFunc("/orders/summary", get(oh.Summary))

	// Cost ledger endpoints
	costs := handlers.NewCostHandler(costSvc)
	mux.HandleFunc("/costs/materials", listCreate(costs.ListMaterials, costs.AddMaterial))
	mux.HandleFunc("/costs/materials/update", post(costs.UpdateMaterial))
	mux.HandleFunc("/costs/materials/delete", post(costs.DeleteMaterial))
	mux.HandleFunc("/costs/labor", listCreate(costs.ListLabor, costs.AddLabor))
	mux.HandleFunc("/costs/labor/update", post(costs.UpdateLabor))
	mux.HandleFunc("/costs/labor/delete", post(costs.DeleteLabor))
	mux.HandleFunc("/costs/other", listCreate(costs.ListOther, costs.AddOther))
	mux.HandleFunc("/costs/other/update", post(costs.UpdateOther))
	mux.HandleFunc("/costs/other/delete", post(costs.DeleteOther))

	// Quote endpoints
	qh := handlers.NewQuoteHandler(services.NewQuoteService(db))
	mux.HandleFunc("/quotes", listCreate(qh.List, qh.Create))
	mux.HandleFunc("/quotes/get", get(qh.Get))
	mux.HandleFunc("/quotes/update", post(qh.Update))
	mux.HandleFunc("/quotes/status", post(qh.UpdateStatus))
	mux.HandleFunc("/quotes/delete", post(qh.Delete))

	// Activity feed
	ah := handlers.NewActivityHandler(services.NewActivityService(db))
	mux.HandleFunc("/activities", get(ah.List))

	// Settings
	sh := handlers.NewSettingsHandler(services.NewSettingsService(db))
	mux.HandleFunc("/settings", listCreate(sh.Get, sh.Update))

	// Reports
	rh := handlers.NewReportsHandler(services.NewReportsService(db))
	mux.HandleFunc("/reports", get(rh.Summary))

	// Export / import
	eh := handlers.NewExportHandler(db)
	mux.HandleFunc("/export", get(eh.Export))
	mux.HandleFunc("/import", post(eh.Import))

	return mux
}

func listCreate(list, create http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

func get(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}
