package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/user"
)

// SignupParams are the account details supplied at signup.
type SignupParams struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Password   string `json:"password" validate:"required,min=5"`
	ProductKey string `json:"productKey,omitempty"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Role user.Role `json:"role"`
}

// Service handles signup, signin and token issuance.
type Service struct {
	users         *user.Store
	hasher        Hasher
	signer        Signer
	productSecret string
}

// NewService creates an auth service.
func NewService(users *user.Store, hasher Hasher, signer Signer, productSecret string) *Service {
	return &Service{users: users, hasher: hasher, signer: signer, productSecret: productSecret}
}

// NewServiceFromConfig wires the bcrypt hasher and JWT signer described by cfg.
func NewServiceFromConfig(users *user.Store, cfg Config) *Service {
	return NewService(users, NewBcryptHasher(cfg.BcryptCost), NewJWTSigner(cfg.TokenSecret, cfg.TokenTTL), cfg.ProductKeySecret)
}

// Signup creates an account with the given role and returns a session token.
func (s *Service) Signup(p SignupParams, role user.Role) (string, error) {
	email := normalizeEmail(p.Email)

	_, err := s.users.GetByEmail(email)
	if err == nil {
		return "", fmt.Errorf("email %s: %w", email, apperr.ErrConflict)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return "", err
	}

	u, err := s.users.Create(&user.User{
		Name:         strings.TrimSpace(p.Name),
		Email:        email,
		Phone:        strings.TrimSpace(p.Phone),
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return "", err
	}

	slog.Info("user signed up", "user_id", u.ID, "role", u.Role)

	return s.GenerateToken(u.Name, u.ID)
}

// Register is Signup gated by a product key for ADMIN and REALTOR accounts.
func (s *Service) Register(p SignupParams, role user.Role) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("role %q: %w", role, apperr.ErrInvalid)
	}
	if role.Privileged() {
		if p.ProductKey == "" || !s.VerifyProductKey(p.Email, role, p.ProductKey) {
			return "", fmt.Errorf("product key for %s: %w", role, apperr.ErrUnauthorized)
		}
	}
	return s.Signup(p, role)
}

// Signin checks credentials and returns a fresh session token. Unknown email
// and wrong password fail identically.
func (s *Service) Signin(email, password string) (string, error) {
	u, err := s.users.GetByEmail(normalizeEmail(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", apperr.ErrInvalidCredentials
	}

	return s.GenerateToken(u.Name, u.ID)
}

// GenerateToken issues a session token carrying name and id.
func (s *Service) GenerateToken(name string, id int64) (string, error) {
	return s.signer.Sign(name, id)
}

// GenerateProductKey derives the registration key for email and role.
func (s *Service) GenerateProductKey(email string, role user.Role) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("role %q: %w", role, apperr.ErrInvalid)
	}
	return s.hasher.Hash(s.productKeyInput(email, role))
}

// VerifyProductKey reports whether key was generated for email and role.
func (s *Service) VerifyProductKey(email string, role user.Role, key string) bool {
	return s.hasher.Verify(s.productKeyInput(email, role), key)
}

// productKeyInput digests email, role and secret so the hasher always sees a
// fixed-length input regardless of email length.
func (s *Service) productKeyInput(email string, role user.Role) string {
	sum := sha256.Sum256([]byte(normalizeEmail(email) + "-" + string(role) + "-" + s.productSecret))
	return hex.EncodeToString(sum[:])
}

// Me returns the account behind an identity.
func (s *Service) Me(id int64) (*user.User, error) {
	return s.users.GetByID(id)
}

// Users lists every account.
func (s *Service) Users() ([]*user.User, error) {
	return s.users.List()
}

// Identify resolves a bearer token to the caller's identity. The role comes
// from the store, so a role change takes effect without reissuing tokens.
func (s *Service) Identify(token string) (*Identity, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrUnauthenticated)
	}

	u, err := s.users.GetByID(claims.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("token for unknown user %d: %w", claims.ID, apperr.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}

	return &Identity{ID: u.ID, Name: u.Name, Role: u.Role}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
