package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"notemind-backend/internal/handlers"
	"notemind-backend/internal/middleware"
	"notemind-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	noteHandler *handlers.NoteHandler,
	suggestHandler *handlers.SuggestHandler,
	wsHub *websocket.Hub,
	authLimiter *middleware.RateLimiter,
	suggestLimiter *middleware.RateLimiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/google", authHandler.GoogleLogin)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Suggestion Preview ────
		r.Route("/suggest", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(suggestLimiter.Middleware)
			r.Post("/", suggestHandler.Preview)
		})

		// ──── Note Routes ────
		r.Route("/notes", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", noteHandler.Create)
			r.Get("/", noteHandler.List)
			r.Get("/status", noteHandler.Status)

			r.Group(func(r chi.Router) {
				r.Use(suggestLimiter.Middleware)
				r.Post("/suggest", noteHandler.CreateFromSuggestion)
			})

			r.Get("/{id}", noteHandler.Get)
			r.Put("/{id}", noteHandler.Update)
			r.Patch("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
