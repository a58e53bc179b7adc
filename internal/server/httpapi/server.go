// Package httpapi exposes the vault over HTTP. It is thin glue: handlers
// decode requests, call the services, and map sentinel errors to status
// codes. No internal detail reaches a response body.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hasilakhwa/secure-locker-api/internal/logging"
	"github.com/hasilakhwa/secure-locker-api/internal/server/services"
)

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	secrets *services.SecretService
}

func NewServer(address string, l logging.Logger, us *services.UserService, ss *services.SecretService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		secrets: ss,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Route("/secrets", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Post("/", s.handleCreateSecret)
		r.Get("/", s.handleListSecrets)
		r.Put("/{id}", s.handleUpdateSecret)
		r.Delete("/{id}", s.handleDeleteSecret)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully so in-flight
// requests release their connections before the process exits.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "response encoding error", "error", err.Error())
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}
