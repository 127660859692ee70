package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliente-go/internal/bootstrap"
	"cliente-go/internal/config"
	"cliente-go/internal/logger"
	"cliente-go/internal/server"
	"cliente-go/internal/user"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("cliente-api %s\n", formatVersionInfo())
		return
	}

	// Initialize logger first so configuration errors are visible
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	// Update logger with the validated environment
	logger.Init(cfg.Env, cfg.LogFormat)
	cfg.Log()

	log.Info().
		Str("log_level", zerolog.GlobalLevel().String()).
		Str("version", version).
		Str("commit", commit).
		Str("built", date).
		Msg("Starting cliente-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := bootstrap.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open user store")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing user store")
		}
	}()

	userHandler := user.NewHandler(user.NewService(backend.Store))

	httpServer, err := server.NewServer(cfg, userHandler, backend.Health).Start()
	if err != nil {
		log.Fatal().Err(err).Msg("Error starting server")
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Info().Msg("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		httpServer.SetKeepAlivesEnabled(false)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}

		cancel()
	}()

	log.Info().
		Int("port", cfg.Port).
		Msg("Server is ready to handle requests")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server error")
		cancel()
	}

	<-ctx.Done()
	log.Info().Msg("Server shutdown completed")
}

func formatVersionInfo() string {
	return fmt.Sprintf(`Version: %s
Commit: %s
Built: %s`, version, commit, date)
}
