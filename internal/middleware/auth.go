package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/homeline/homeline-go/internal/crypto"
	"github.com/homeline/homeline-go/internal/model"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	userKey     contextKey = "user"
)

// Identity is the caller named by a verified session token.
type Identity struct {
	UserID int64
	Name   string
}

// TokenParser verifies session tokens. Implemented by *crypto.TokenIssuer.
type TokenParser interface {
	Parse(token string) (*crypto.Claims, error)
}

// UserLookup loads the current state of a user.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// Authenticate attaches the caller's identity when the request carries a
// valid Bearer token. A missing or bad token leaves the request anonymous;
// RequireRoles decides whether that is acceptable.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: claims.UserID, Name: claims.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects callers whose stored role is not one of roles.
// With no roles every caller, anonymous included, passes.
func RequireRoles(users UserLookup, roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			// The token carries no role, so it is read fresh on every request.
			user, err := users.GetUser(r.Context(), id.UserID)
			if err != nil || !slices.Contains(roles, user.Role) {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity set by Authenticate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserFromContext returns the user loaded by RequireRoles.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
