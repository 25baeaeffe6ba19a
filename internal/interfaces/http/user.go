package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finmirror/internal/domain/consent"
	"finmirror/internal/domain/customer"
	"finmirror/internal/domain/user"
	"finmirror/internal/shared/middleware"
)

type UserHandler struct {
	users     user.Repository
	customers customer.Repository
	consents  consent.Repository
}

func NewUserHandler(users user.Repository, customers customer.Repository, consents consent.Repository) *UserHandler {
	return &UserHandler{users: users, customers: customers, consents: consents}
}

type MeResponse struct {
	User     *user.User         `json:"user"`
	Customer *customer.Customer `json:"customer,omitempty"`
	Consent  *consent.Consent   `json:"consent,omitempty"`
}

// HandleMe returns the authenticated user and, when a sync pass has already
// mirrored their data, the linked customer record and the consent backing it.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to get user %d: %v", userID, err)
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	resp := MeResponse{User: u}
	if c, err := h.customers.GetByTaxID(r.Context(), u.TaxID); err == nil {
		resp.Customer = c
		if cns, err := h.consents.GetByCustomerID(r.Context(), c.ID); err == nil {
			resp.Consent = cns
		} else if !errors.Is(err, consent.ErrConsentNotFound) {
			log.Printf("Failed to load consent for customer %s: %v", c.ID, err)
		}
	} else if !errors.Is(err, customer.ErrCustomerNotFound) {
		log.Printf("Failed to load mirrored customer for user %d: %v", userID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
