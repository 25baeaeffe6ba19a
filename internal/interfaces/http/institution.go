package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finmirror/internal/domain/institution"
)

type InstitutionHandler struct {
	repo institution.Repository
}

func NewInstitutionHandler(repo institution.Repository) *InstitutionHandler {
	return &InstitutionHandler{repo: repo}
}

// HandleList returns the mirrored institution directory.
// ?active=true restricts the listing to active institutions.
func (h *InstitutionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	onlyActive := r.URL.Query().Get("active") == "true"

	institutions, err := h.repo.List(r.Context(), onlyActive)
	if err != nil {
		log.Printf("Failed to list institutions: %v", err)
		http.Error(w, "Failed to list institutions", http.StatusInternalServerError)
		return
	}
	if institutions == nil {
		institutions = []*institution.Institution{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(institutions)
}
