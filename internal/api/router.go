package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"shoppergpt-backend/internal/handlers"
	"shoppergpt-backend/internal/services"
)

// RouterDependencies holds everything the router setup needs.
type RouterDependencies struct {
	WebhookHandlers *handlers.WebhookHandlers
	AdminHandlers   *handlers.AdminHandlers
	AdminService    *services.AdminService
	Logger          *zap.Logger
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for the dashboard frontend.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Provider-facing webhook. Public by necessity: the GET handshake and
	// POST deliveries carry their own verification.
	r.Route("/whatsapp/webhook", func(r chi.Router) {
		r.Get("/", deps.WebhookHandlers.HandleVerify)
		r.Post("/", deps.WebhookHandlers.HandleReceive)
	})

	// Admin dashboard API.
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", deps.AdminHandlers.HandleLogin)

		r.Route("/api", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(deps.AdminService, deps.Logger))

			r.Get("/users", deps.AdminHandlers.HandleListUsers)
			r.Route("/users/{whatsappID}", func(r chi.Router) {
				r.Get("/", deps.AdminHandlers.HandleGetUser)
				r.Patch("/profile", deps.AdminHandlers.HandleUpdateProfile)
				r.Get("/messages", deps.AdminHandlers.HandleGetConversation)
				r.Get("/wishlist", deps.AdminHandlers.HandleGetWishlist)
				r.Post("/wishlist", deps.AdminHandlers.HandleAddWishlistItem)
				r.Delete("/wishlist/{itemID}", deps.AdminHandlers.HandleRemoveWishlistItem)
			})
		})
	})

	return r
}
