package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neighborly/internal/config"
	"neighborly/internal/database"
	"neighborly/internal/handlers"
	"neighborly/internal/repository"
	"neighborly/internal/security"
	"neighborly/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.TokenSecret == "" {
		log.Fatal("TOKEN_SECRET must be set")
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repository and services
	hoodRepo := repository.NewNeighborhoodRepository(db)
	registryService := service.NewRegistryService(hoodRepo)

	// Restore the last snapshot so the registry survives restarts
	if err := registryService.LoadFromDatabase(); err != nil {
		log.Printf("Warning: failed to restore registry snapshot: %v", err)
	}

	reportService, err := service.NewReportService(registryService, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize report service: %v", err)
	}

	tokens, err := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenDuration)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens)
	authHandler := handlers.NewAuthHandler(tokens, cfg.AdminPasswordHash)
	registryHandler := handlers.NewRegistryHandler(registryService, reportService)

	// Setup routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// Read-only queries
	mux.HandleFunc("GET /households", registryHandler.ListHouseholds)
	mux.HandleFunc("GET /households/ranked", registryHandler.RankedHouseholds)
	mux.HandleFunc("GET /households/{number}", registryHandler.GetHousehold)
	mux.HandleFunc("GET /residents", registryHandler.ListResidents)
	mux.HandleFunc("GET /residents/{id}", registryHandler.GetResident)
	mux.HandleFunc("GET /stats", registryHandler.Stats)

	// Mutations
	mux.HandleFunc("POST /households", middleware.RequireAuth(registryHandler.CreateHousehold))
	mux.HandleFunc("DELETE /households/{number}", middleware.RequireAuth(registryHandler.DeleteHousehold))
	mux.HandleFunc("POST /households/{number}/residents", middleware.RequireAuth(registryHandler.AddResident))
	mux.HandleFunc("DELETE /households/{number}/residents/{id}", middleware.RequireAuth(registryHandler.DeleteResident))

	// Persistence
	mux.HandleFunc("POST /registry/import", middleware.RequireAuth(registryHandler.ImportCensusFile))
	mux.HandleFunc("POST /registry/export", middleware.RequireAuth(registryHandler.ExportCensusFile))
	mux.HandleFunc("POST /registry/snapshot", middleware.RequireAuth(registryHandler.SaveSnapshot))
	mux.HandleFunc("POST /registry/restore", middleware.RequireAuth(registryHandler.RestoreSnapshot))

	// Reports
	mux.HandleFunc("POST /reports/census", middleware.RequireAuth(registryHandler.SendCensusReport))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Flush the registry to the snapshot store before exit
	if err := registryService.SaveToDatabase(); err != nil {
		log.Printf("Warning: failed to save registry snapshot: %v", err)
	}
}
