package main

import (
	"context"
	"os"

	"cliente-go/internal/bootstrap"
	"cliente-go/internal/config"
	"cliente-go/internal/logger"
	"cliente-go/internal/user"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

func main() {
	// CloudWatch wants one JSON object per line unless told otherwise
	if os.Getenv("LOG_FORMAT") == "" {
		_ = os.Setenv("LOG_FORMAT", "json")
	}
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	logger.Init(cfg.Env, cfg.LogFormat)
	cfg.Log()

	// The store is opened once per container and reused across invocations
	backend, err := bootstrap.OpenStore(context.Background(), cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open user store")
	}

	handler := user.NewHandler(user.NewService(backend.Store))
	lambda.Start(handler.HandleAPIGateway)
}
