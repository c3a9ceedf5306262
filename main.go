package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hpandey/instaclone-be/internal/api"
	"github.com/hpandey/instaclone-be/internal/auth"
	"github.com/hpandey/instaclone-be/internal/config"
	"github.com/hpandey/instaclone-be/internal/database"
	"github.com/hpandey/instaclone-be/internal/logger"
	"github.com/hpandey/instaclone-be/internal/mailer"
	"github.com/hpandey/instaclone-be/internal/monitoring"
	"github.com/hpandey/instaclone-be/internal/services"
	"github.com/hpandey/instaclone-be/internal/store"
	"github.com/hpandey/instaclone-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}
	cancel()

	userStore := store.NewMongoUserStore(db)
	postStore := store.NewMongoPostStore(db)

	// Set up the activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewTokenService(cfg.JWTSecret)
	mail := mailer.NewSMTPSender(cfg)
	authService := services.NewAuthService(userStore, tokens, mail, cfg.AppHost)
	userService := services.NewUserService(userStore, postStore, hub)
	postService := services.NewPostService(postStore, hub)

	// Set up and run the background reset-token sweeper
	sweeper := monitoring.NewResetSweeper(userStore)
	if err := sweeper.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reset-token sweeper")
	}

	// Set up router
	router := api.NewRouter(cfg.ClientURL, tokens, userStore, authService, userService, postService, hub)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
