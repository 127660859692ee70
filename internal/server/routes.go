package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if s.config.Env == "dev" || s.config.Env == "development" {
		r.Use(middleware.NoCache)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(s.handleError404)

	r.Get("/health", s.healthHandler)

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequestSize(maxBodyBytes))
		r.Put("/", s.userHandler.HandleUpdate)
		r.Patch("/", s.userHandler.HandleUpdate)
	})

	return r
}

// requestLogger logs every request with zerolog once it completes
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		}()

		next.ServeHTTP(ww, r)
	})
}
