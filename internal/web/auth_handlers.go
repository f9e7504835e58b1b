package web

import (
	"fmt"
	"net/http"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/auth"
	"github.com/evcraddock/homebase/internal/user"
)

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type productKeyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// handleSignup creates an account for the role in the path. ADMIN and
// REALTOR accounts need a product key in the body.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	role, ok := user.ParseRole(r.PathValue("role"))
	if !ok {
		apiFail(w, r, fmt.Errorf("unknown role %q: %w", r.PathValue("role"), apperr.ErrInvalid))
		return
	}

	var req auth.SignupParams
	if err := s.decode(r, &req); err != nil {
		apiFail(w, r, err)
		return
	}

	token, err := s.auth.Register(req, role)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, tokenResponse{Token: token}, http.StatusCreated)
}

// handleSignin exchanges credentials for a session token.
func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := s.decode(r, &req); err != nil {
		apiFail(w, r, err)
		return
	}

	token, err := s.auth.Signin(req.Email, req.Password)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, tokenResponse{Token: token}, http.StatusOK)
}

// handleProductKey issues a registration key for an email and role.
func (s *Server) handleProductKey(w http.ResponseWriter, r *http.Request) {
	var req productKeyRequest
	if err := s.decode(r, &req); err != nil {
		apiFail(w, r, err)
		return
	}

	role, ok := user.ParseRole(req.Role)
	if !ok {
		apiFail(w, r, fmt.Errorf("unknown role %q: %w", req.Role, apperr.ErrInvalid))
		return
	}

	key, err := s.auth.GenerateProductKey(req.Email, role)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, map[string]string{"product_key": key}, http.StatusOK)
}

// handleMe returns the caller's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	me, err := caller(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	u, err := s.auth.Me(me.ID)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, u, http.StatusOK)
}

// apiListUsers returns every account (admin only).
func (s *Server) apiListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.auth.Users()
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, users, http.StatusOK)
}
