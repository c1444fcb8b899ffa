package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "elira-backend/internal/api/http"
	"elira-backend/internal/config"
	"elira-backend/internal/jobs"
	"elira-backend/internal/logger"
	"elira-backend/internal/repository/postgres"
	"elira-backend/internal/scheduler"
	"elira-backend/internal/security"
	"elira-backend/internal/service"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("with-scheduler", true, "Run the purchase event relay in-process")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Elira backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Auth configuration", "provider", cfg.Auth.Provider)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize token verification. The jwt provider also enables the dev
	// login endpoint; firebase validates client-side ID tokens only.
	var verifier security.TokenVerifier
	var authHandler *httpapi.AuthHandler
	if cfg.Auth.Provider == "firebase" {
		verifier, err = security.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase verifier", "error", err)
			log.Fatalf("Failed to initialize firebase verifier: %v", err)
		}
	} else {
		tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)
		verifier = tokenManager
		authSvc := service.NewAuthService(store.UserRepository, tokenManager)
		authHandler = httpapi.NewAuthHandler(authSvc)
	}
	authMw := httpapi.NewAuthMiddleware(verifier)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.Enabled)

	// Initialize Services
	purchaseSvc := service.NewPurchaseService(
		store.PurchaseRepository,
		store.OrganizationRepository,
		store.MemberRepository,
		store.MasterclassRepository,
	)
	catalogSvc := service.NewCatalogService(store.MasterclassRepository)
	progressSvc := service.NewProgressService(store.ProgressRepository)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	purchaseHandler := httpapi.NewPurchaseHandler(purchaseSvc)
	catalogHandler := httpapi.NewCatalogHandler(catalogSvc)
	dashboardHandler := httpapi.NewDashboardHandler(progressSvc, notificationSvc)

	router := mux.NewRouter()
	httpapi.RegisterRoutes(router, authMw, authHandler, catalogHandler, purchaseHandler, dashboardHandler)

	// Run the outbox relay in-process unless a dedicated cronjob binary
	// handles it.
	if *withScheduler {
		jobRunner := jobs.NewJobRunner(
			store.PurchaseRepository,
			store.PurchaseEventRepository,
			store.UserRepository,
			store.OrganizationRepository,
			store.NotificationRepository,
			emailSvc,
			cfg,
		)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
