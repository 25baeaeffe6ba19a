package main

import (
	"context"
	"log"

	"finmirror/internal/domain/dashboard"
	"finmirror/internal/domain/notification"
	"finmirror/internal/domain/sync"
	"finmirror/internal/infrastructure/firebase"
	"finmirror/internal/infrastructure/postgres"
	"finmirror/internal/infrastructure/provider"
	httphandlers "finmirror/internal/interfaces/http"
	"finmirror/internal/shared/auth"
	"finmirror/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	UserHandler         *httphandlers.UserHandler
	SyncHandler         *httphandlers.SyncHandler
	InstitutionHandler  *httphandlers.InstitutionHandler
	ConsentHandler      *httphandlers.ConsentHandler
	AccountHandler      *httphandlers.AccountHandler
	TransactionHandler  *httphandlers.TransactionHandler
	DashboardHandler    *httphandlers.DashboardHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Orchestrator (for the scheduler job provider and manual triggers)
	Orchestrator *sync.Orchestrator
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	institutionRepo := postgres.NewInstitutionRepository(db)
	consentRepo := postgres.NewConsentRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Initialize push delivery. Without Firebase credentials the
	// notification service still records device tokens but sends nothing.
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase messaging: %v", err)
		} else {
			messenger = fcmClient
			log.Println("Firebase messaging initialized")
		}
	} else {
		log.Println("Firebase credentials not configured, push delivery disabled")
	}
	notificationService := notification.NewService(notificationRepo, messenger)

	// Initialize provider client and reconcilers
	providerClient := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout)

	institutionReconciler := sync.NewInstitutionReconciler(providerClient, institutionRepo)
	consentReconciler := sync.NewConsentReconciler(providerClient, consentRepo)
	customerReconciler := sync.NewCustomerReconciler(providerClient, customerRepo)
	accountReconciler := sync.NewAccountReconciler(providerClient, accountRepo, customerRepo, cfg.Sync.AccountKinds)
	transactionReconciler := sync.NewTransactionReconciler(providerClient, transactionRepo, accountRepo)

	orchestrator := sync.NewOrchestrator(
		institutionReconciler,
		consentReconciler,
		customerReconciler,
		accountReconciler,
		transactionReconciler,
		consentRepo,
		notificationService,
	)

	// Initialize domain services
	dashboardService := dashboard.NewService(customerRepo, accountRepo, transactionRepo)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt)
	userHandler := httphandlers.NewUserHandler(userRepo, customerRepo, consentRepo)
	syncHandler := httphandlers.NewSyncHandler(orchestrator)
	institutionHandler := httphandlers.NewInstitutionHandler(institutionRepo)
	consentHandler := httphandlers.NewConsentHandler(consentRepo, consentReconciler)
	accountHandler := httphandlers.NewAccountHandler(customerRepo, accountRepo)
	transactionHandler := httphandlers.NewTransactionHandler(accountHandler, transactionRepo)
	dashboardHandler := httphandlers.NewDashboardHandler(dashboardService)
	notificationHandler := httphandlers.NewNotificationHandler(notificationService)

	return &Dependencies{
		DB:                  db,
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		SyncHandler:         syncHandler,
		InstitutionHandler:  institutionHandler,
		ConsentHandler:      consentHandler,
		AccountHandler:      accountHandler,
		TransactionHandler:  transactionHandler,
		DashboardHandler:    dashboardHandler,
		NotificationHandler: notificationHandler,
		JWT:                 jwt,
		Orchestrator:        orchestrator,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
