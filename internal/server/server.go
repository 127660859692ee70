package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cliente-go/internal/config"
	"cliente-go/internal/user"

	"github.com/rs/zerolog/log"
)

// HealthFunc reports the health of the user store
type HealthFunc func(ctx context.Context) map[string]string

// Server represents the HTTP server and its dependencies
type Server struct {
	config      *config.Config
	userHandler *user.Handler
	health      HealthFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, userHandler *user.Handler, health HealthFunc) *Server {
	return &Server{
		config:      cfg,
		userHandler: userHandler,
		health:      health,
	}
}

// Start builds the HTTP server; the caller runs ListenAndServe
func (s *Server) Start() (*http.Server, error) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info().
		Int("port", s.config.Port).
		Str("env", s.config.Env).
		Msg("Starting server")

	return srv, nil
}

// sendJSON sends a JSON response with consistent formatting
func (s *Server) sendJSON(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := APIResponse{
		Success: success,
		Message: message,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}
