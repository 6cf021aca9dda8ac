package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notemind-backend/internal/config"
	"notemind-backend/internal/database"
	"notemind-backend/internal/handlers"
	"notemind-backend/internal/middleware"
	"notemind-backend/internal/repository"
	"notemind-backend/internal/router"
	"notemind-backend/internal/services"
	"notemind-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting NoteMind Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	noteRepo := repository.NewNoteRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiClient, err := services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiMaxTokens)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiClient.Close()
	log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	authService := services.NewAuthService(userRepo, redisClients.Store, jwtAuth, cfg.GoogleClientID)
	suggestionService := services.NewSuggestionService(geminiClient)
	eventPublisher := services.NewEventPublisher(redisClients.Store)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	noteHandler := handlers.NewNoteHandler(noteRepo, suggestionService, eventPublisher)
	suggestHandler := handlers.NewSuggestHandler(suggestionService)

	// ──── Step 6: Start Due Reminder Scheduler ────
	reminderScheduler := services.NewDueReminderScheduler(noteRepo, emailService)
	reminderScheduler.Start()
	log.Println("✓ Due reminder scheduler started")

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	// Auth endpoints get a tighter limit than the AI ones.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	suggestLimiter := middleware.NewRateLimiter(20, time.Minute)

	r := router.New(
		jwtAuth,
		authHandler,
		noteHandler,
		suggestHandler,
		wsHub,
		authLimiter,
		suggestLimiter,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		reminderScheduler.Stop()
		authLimiter.Stop()
		suggestLimiter.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ NoteMind Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
