package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"finmirror/internal/domain/customer"
	"finmirror/internal/domain/dashboard"
	"finmirror/internal/shared/middleware"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// HandleBillStats returns this month's and last month's card bill totals
// with month-over-month growth for the authenticated user.
func (h *DashboardHandler) HandleBillStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	taxID, ok := middleware.TaxIDFromContext(r.Context())
	if !ok || taxID == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.CardBillStats(r.Context(), taxID, time.Now())
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			http.Error(w, "No mirrored data for this user yet", http.StatusNotFound)
			return
		}
		log.Printf("Failed to compute bill stats: %v", err)
		http.Error(w, "Failed to compute bill stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
