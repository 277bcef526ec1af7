package api

import (
	"net/http"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/config"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/handlers"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	TransactionHandler *handlers.TransactionHandler
	LoanHandler        *handlers.LoanHandler
	ChatHandler        *handlers.ChatHandler
	DocumentHandler    *handlers.DocumentHandler
	SettingsHandler    *handlers.SettingsHandler
	Config             *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)

		// --- Authenticated Routes (JWT Required) ---
		r.Group(func(r chi.Router) {
			r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", deps.TransactionHandler.HandleListTransactions)
				r.Post("/", deps.TransactionHandler.HandleAddTransaction)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Get("/", deps.LoanHandler.HandleListLoans)
				r.Post("/", deps.LoanHandler.HandleCreateLoan)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", deps.ChatHandler.HandleSendMessage)
				r.Get("/history", deps.ChatHandler.HandleHistory)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", deps.DocumentHandler.HandleListDocuments)
				r.Post("/", deps.DocumentHandler.HandleUploadDocument)
				r.Delete("/{documentID}", deps.DocumentHandler.HandleDeleteDocument)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", deps.SettingsHandler.HandleGetSettings)
				r.Put("/", deps.SettingsHandler.HandleUpdateSettings)
			})
		})
	})

	return r
}
