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

	"github.com/redis/go-redis/v9"

	"github.com/avicente/recipebook-be/internal/api"
	"github.com/avicente/recipebook-be/internal/config"
	"github.com/avicente/recipebook-be/internal/database"
	"github.com/avicente/recipebook-be/internal/logger"
	"github.com/avicente/recipebook-be/internal/services"
	"github.com/avicente/recipebook-be/internal/session"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the session store: Redis when configured, in-memory otherwise.
	// The in-memory store needs a background janitor to drop expired entries.
	var store session.Store
	var janitor *session.Janitor
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = session.NewRedisStore(client)
	} else {
		memStore := session.NewMemoryStore()
		store = memStore
		janitor = session.NewJanitor(memStore)
		if err := janitor.Start(); err != nil {
			log.Fatalf("Failed to start session janitor: %v", err)
		}
	}
	sessions := session.NewManager(store, cfg.SessionTTL, cfg.SecureCookies)

	// Set up services
	userService := services.NewUserService(db)
	recipeService := services.NewRecipeService(db)

	// Set up router
	router := api.NewRouter(sessions, userService, recipeService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if janitor != nil {
		janitor.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
