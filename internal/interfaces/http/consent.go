package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finmirror/internal/domain/consent"
	"finmirror/internal/domain/sync"
	"finmirror/internal/shared/middleware"
)

type ConsentHandler struct {
	repo       consent.Repository
	reconciler *sync.ConsentReconciler
}

func NewConsentHandler(repo consent.Repository, reconciler *sync.ConsentReconciler) *ConsentHandler {
	return &ConsentHandler{repo: repo, reconciler: reconciler}
}

type ClaimRequest struct {
	ConsentID string `json:"consentId"`
}

// HandleClaim links a mirrored consent to the authenticated user. From the
// next sync cycle on, the consent's data cascades into the user's mirror.
func (h *ConsentHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ConsentID == "" {
		http.Error(w, "consentId is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetOwner(r.Context(), req.ConsentID, userID); err != nil {
		switch {
		case errors.Is(err, consent.ErrConsentNotFound):
			http.Error(w, "Consent not found", http.StatusNotFound)
		case errors.Is(err, consent.ErrAlreadyClaimed):
			http.Error(w, "Consent already claimed by another user", http.StatusConflict)
		default:
			log.Printf("Failed to claim consent %s: %v", req.ConsentID, err)
			http.Error(w, "Failed to claim consent", http.StatusInternalServerError)
		}
		return
	}

	c, err := h.repo.GetByID(r.Context(), req.ConsentID)
	if err != nil {
		log.Printf("Failed to load claimed consent %s: %v", req.ConsentID, err)
		http.Error(w, "Failed to load consent", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// HandleStatus refreshes a single consent against the provider and returns
// the stored record. A consent the provider no longer exposes comes back
// already marked revoked.
func (h *ConsentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Consent id is required", http.StatusBadRequest)
		return
	}

	c, err := h.reconciler.SyncOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, consent.ErrConsentNotFound) {
			http.Error(w, "Consent not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to refresh consent %s: %v", id, err)
		http.Error(w, "Failed to refresh consent", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}
