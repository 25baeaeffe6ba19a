package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finmirror/internal/domain/notification"
	"finmirror/internal/shared/middleware"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type RegisterDeviceRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"deviceType"`
}

// HandleRegisterDevice registers an FCM device token for the authenticated
// user so revocation pushes can reach them.
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dt, err := h.service.RegisterDevice(r.Context(), notification.RegisterDeviceParams{
		UserID:     userID,
		Token:      req.Token,
		DeviceType: req.DeviceType,
	})
	if err != nil {
		if errors.Is(err, notification.ErrInvalidToken) || errors.Is(err, notification.ErrInvalidDeviceType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to register device token: %v", err)
		http.Error(w, "Failed to register device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dt)
}
