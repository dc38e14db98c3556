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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mindnest/backend/internal/auth"
	"github.com/mindnest/backend/internal/config"
	"github.com/mindnest/backend/internal/db"
	routes "github.com/mindnest/backend/internal/http"
	"github.com/mindnest/backend/internal/logger"
	"github.com/mindnest/backend/internal/store"
	"github.com/mindnest/backend/internal/ws"
)

func main() {
	// Allows running in production without a .env file.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.Init(cfg.LogLevel, cfg.LogFile, cfg.Production())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	database, err := db.Init(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	zlog.Info("running database migrations")
	if err := db.Migrate(database); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	if email := os.Getenv("SEED_ADMIN_EMAIL"); email != "" {
		if err := db.SeedAdmin(database, os.Getenv("SEED_ADMIN_USERNAME"), email, os.Getenv("SEED_ADMIN_PASSWORD")); err != nil {
			zlog.Fatal("failed to seed admin", zap.Error(err))
		}
	}

	messages := store.NewMessageStore(database)

	hub := ws.NewHub(messages, zlog)
	go hub.Run()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	env := &routes.Env{
		Cfg:      cfg,
		Auth:     auth.NewService(cfg.JWTSecret),
		Users:    store.NewUserStore(database),
		Ideas:    store.NewIdeaStore(database),
		Messages: messages,
		Hub:      hub,
		Log:      zlog,
	}
	routes.SetupRoutes(router, env)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exiting")
}
