package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/user"
)

type contextKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil
}

// Authenticate attaches the caller's identity when a Bearer token is present.
// Requests without a token pass through anonymously; a bad token is rejected.
func Authenticate(svc *Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, apperr.ErrUnauthenticated)
			return
		}

		id, err := svc.Identify(token)
		if err != nil {
			writeError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireRole rejects anonymous callers with 401 and callers whose role is
// not listed with 403. With no roles, any authenticated caller is allowed.
func RequireRole(next http.Handler, roles ...user.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, apperr.ErrUnauthenticated)
			return
		}

		if len(roles) > 0 && !hasRole(id.Role, roles) {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hasRole(r user.Role, allowed []user.Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": apperr.Message(err)})
}
