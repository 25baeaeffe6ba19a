package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finmirror/internal/domain/sync"
)

type SyncHandler struct {
	orchestrator *sync.Orchestrator
}

func NewSyncHandler(orchestrator *sync.Orchestrator) *SyncHandler {
	return &SyncHandler{orchestrator: orchestrator}
}

// HandleTrigger runs one mirror pass inline and returns its aggregate
// report. A pass already in flight yields 409 so clients can tell "ran with
// errors" (200) apart from "did not run".
func (h *SyncHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.orchestrator.Run(r.Context())
	if err != nil {
		log.Printf("Sync run failed: %v", err)
		http.Error(w, "Sync run failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if report.Skipped {
		w.WriteHeader(http.StatusConflict)
	}
	json.NewEncoder(w).Encode(report)
}

// HandleStatus reports whether a mirror pass is currently running.
func (h *SyncHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"running": h.orchestrator.Running()})
}
