// Package web provides the HTTP JSON API for homebase.
package web

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/homebase/internal/auth"
	"github.com/evcraddock/homebase/internal/listing"
	"github.com/evcraddock/homebase/internal/logging"
	"github.com/evcraddock/homebase/internal/message"
	"github.com/evcraddock/homebase/internal/user"
)

// Server is the API HTTP server.
type Server struct {
	db       *sql.DB
	listings *listing.Service
	auth     *auth.Service
	validate *validator.Validate
	mux      *http.ServeMux
	handler  http.Handler
}

// NewServer creates an API server backed by the given database.
func NewServer(db *sql.DB, cfg auth.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}

	s := &Server{
		db:       db,
		listings: listing.NewService(listing.NewRepository(db), message.NewRepository(db)),
		auth:     auth.NewServiceFromConfig(user.NewStore(db), cfg),
		validate: newValidator(),
		mux:      http.NewServeMux(),
	}
	s.routes()
	s.handler = logging.RequestLogger(auth.Authenticate(s.auth, s.mux))

	return s, nil
}

func (s *Server) routes() {
	admin := []user.Role{user.RoleAdmin}
	realtor := []user.Role{user.RoleRealtor}
	buyer := []user.Role{user.RoleBuyer}
	staff := []user.Role{user.RoleAdmin, user.RoleRealtor}

	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /auth/signup/{role}", s.handleSignup)
	s.mux.HandleFunc("POST /auth/signin", s.handleSignin)
	s.mux.Handle("POST /auth/key", guard(s.handleProductKey, admin...))
	s.mux.Handle("GET /auth/me", guard(s.handleMe))

	s.mux.HandleFunc("GET /api/listings", s.apiSearchListings)
	s.mux.HandleFunc("GET /api/listings/{id}", s.apiGetListing)
	s.mux.Handle("POST /api/listings", guard(s.apiCreateListing, realtor...))
	s.mux.Handle("PUT /api/listings/{id}", guard(s.apiUpdateListing, staff...))
	s.mux.Handle("DELETE /api/listings/{id}", guard(s.apiDeleteListing, staff...))
	s.mux.Handle("POST /api/listings/{id}/inquire", guard(s.apiInquire, buyer...))
	s.mux.Handle("GET /api/listings/{id}/messages", guard(s.apiListMessages, realtor...))

	s.mux.Handle("GET /api/users", guard(s.apiListUsers, admin...))
}

func guard(h http.HandlerFunc, roles ...user.Role) http.Handler {
	return auth.RequireRole(h, roles...)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	slog.Info("starting API server", "addr", srv.Addr)
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		apiError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
