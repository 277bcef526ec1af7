package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/api"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/config"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/crypto"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/handlers"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/llm"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/services"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store/memory"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting FinFlow Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize the store. With a DATABASE_URL we run on Postgres;
	// without one the whole API runs against the in-memory store (demo mode).
	var st store.Store
	if cfg.DatabaseURL != "" {
		dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dbCancel()

		dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
		}
		defer dbpool.Close()

		if err := dbpool.Ping(dbCtx); err != nil {
			log.Fatalf("FATAL: Unable to ping database: %v\n", err)
		}
		log.Println("Database connection pool established and pinged successfully.")

		st = postgres.NewPostgresStore(dbpool)
	} else {
		log.Println("Running with in-memory store; data will not survive a restart.")
		st = memory.NewMemoryStore()
	}

	// --- Create AEAD Cipher for API key encryption at rest ---
	aead, err := crypto.NewAESGCM(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("FATAL: Failed to create AES-GCM cipher: %v", err)
	}

	// --- Completion Gateway Client ---
	gateway := llm.NewClient(cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey, cfg.OpenRouter.Model)

	// --- Initialize Services ---
	authService := services.NewAuthService(st, cfg)
	ledgerService := services.NewLedgerService(st)
	loanService := services.NewLoanService(st)
	documentService := services.NewDocumentService(st)
	settingsService := services.NewSettingsService(st, aead)
	chatService := services.NewChatService(st, gateway, settingsService)
	log.Println("Services initialized.")

	// --- Initialize Handlers ---
	routerDeps := api.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		TransactionHandler: handlers.NewTransactionHandler(ledgerService),
		LoanHandler:        handlers.NewLoanHandler(loanService),
		ChatHandler:        handlers.NewChatHandler(chatService),
		DocumentHandler:    handlers.NewDocumentHandler(documentService),
		SettingsHandler:    handlers.NewSettingsHandler(settingsService),
		Config:             cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 3. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// WriteTimeout stays generous because a chat turn waits on the
		// completion gateway.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}
