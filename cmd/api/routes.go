package main

import (
	"net/http"

	httphandlers "finmirror/internal/interfaces/http"
	"finmirror/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleMe)))
	mux.Handle("/api/sync", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleTrigger)))
	mux.Handle("/api/sync/status", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleStatus)))
	mux.Handle("/api/institutions", authMiddleware(http.HandlerFunc(deps.InstitutionHandler.HandleList)))
	mux.Handle("/api/consents/claim", authMiddleware(http.HandlerFunc(deps.ConsentHandler.HandleClaim)))
	mux.Handle("/api/consents/{id}/status", authMiddleware(http.HandlerFunc(deps.ConsentHandler.HandleStatus)))
	mux.Handle("/api/accounts", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleList)))
	mux.Handle("/api/accounts/{id}", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleByID)))
	mux.Handle("/api/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleList)))
	mux.Handle("/api/dashboard/bill-stats", authMiddleware(http.HandlerFunc(deps.DashboardHandler.HandleBillStats)))
	mux.Handle("/api/notifications/register-device", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))

	// Apply global middleware
	return middleware.Logging(middleware.CORS(middleware.Telemetry(mux)))
}
