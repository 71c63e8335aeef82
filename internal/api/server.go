// Package api is a reference implementation of the question-catalog REST
// contract consumed by pkg/client. It backs local development and the
// integration tests; production deployments may substitute any service that
// speaks the same contract.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/interview-console/internal/storage"
)

// Server represents the question service HTTP API
type Server struct {
	router *chi.Mux
	repo   storage.Repository
	auth   *AuthMiddleware
}

// NewServer creates a new API server backed by the given repository.
// adminTokens is the set of credentials allowed to mutate the catalog.
func NewServer(repo storage.Repository, adminTokens []string) *Server {
	s := &Server{
		repo: repo,
		auth: NewAuthMiddleware(adminTokens),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Post("/signup", s.handleSignup)

	r.Route("/questions", func(r chi.Router) {
		// Reads are open; the Authorization header is accepted but not
		// required.
		r.Get("/", s.handleListQuestions)
		r.Get("/{id}", s.handleGetQuestion)

		// Mutations require an admin credential.
		r.With(s.auth.RequireAdmin).Post("/", s.handleCreateQuestion)
		r.With(s.auth.RequireAdmin).Put("/{id}", s.handleUpdateQuestion)
		r.With(s.auth.RequireAdmin).Delete("/{id}", s.handleDeleteQuestion)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
