package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/boombag/referral/docs"
	"github.com/boombag/referral/internal/admin"
	"github.com/boombag/referral/internal/auth"
	"github.com/boombag/referral/internal/config"
	"github.com/boombag/referral/internal/database"
	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/internal/progression"
	"github.com/boombag/referral/internal/user"
	mw "github.com/boombag/referral/pkg/middleware"
	"github.com/boombag/referral/pkg/token"
)

// @title        Boom Bag Referral API
// @version      1.0
// @description  Referral-network membership tracker: invite-code signups, capped groups, three-level progression.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Redis is optional; stats fall back to recomputing without it
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	tokens := token.NewManager(cfg.JWTSecret)

	// Repositories
	userRepo := user.NewRepository(db)
	groupRepo := group.NewRepository(db)
	inviteRepo := invite.NewRepository(db)

	// Membership ledger: the single source of verified-member counts
	ledger := invite.NewLedger(inviteRepo)

	// Group registry
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService, ledger)

	// Progression engine and join broker
	engine := progression.NewEngine(userRepo, groupService, inviteRepo, ledger)
	broker := progression.NewBroker(userRepo, groupService, inviteRepo, ledger)
	membershipHandler := progression.NewHandler(broker)

	// User feature
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Auth feature
	authService := auth.NewService(userRepo, groupRepo, inviteRepo, tokens)
	authHandler := auth.NewHandler(authService)

	// Admin feature
	adminService := admin.NewService(userRepo, groupRepo, cache)
	adminHandler := admin.NewHandler(adminService, engine)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(tokens))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/membership", membershipHandler.Routes())

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)
				r.Mount("/admin", adminHandler.Routes())
			})
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
