package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeline/homeline-go/internal/crypto"
	"github.com/homeline/homeline-go/internal/model"
)

type stubUsers map[int64]*model.User

func (s stubUsers) GetUser(_ context.Context, id int64) (*model.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, context.Canceled
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "Bearer   ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestAuthenticate(t *testing.T) {
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	token, err := tokens.Issue("Mahdi", 7)
	require.NoError(t, err)

	var got Identity
	var ok bool
	h := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = IdentityFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		wantOK bool
	}{
		{name: "valid", header: "Bearer " + token, wantOK: true},
		{name: "missing", header: "", wantOK: false},
		{name: "garbage", header: "Bearer nope", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, Identity{UserID: 7, Name: "Mahdi"}, got)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Role: model.RoleBuyer},
		2: {ID: 2, Role: model.RoleRealtor},
	}

	withIdentity := func(id int64) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id == 0 {
			return req
		}
		return req.WithContext(context.WithValue(req.Context(), identityKey, Identity{UserID: id}))
	}

	tests := []struct {
		name   string
		userID int64
		roles  []model.Role
		want   int
	}{
		{name: "no roles anonymous", roles: nil, want: http.StatusOK},
		{name: "anonymous", userID: 0, roles: []model.Role{model.RoleRealtor}, want: http.StatusUnauthorized},
		{name: "wrong role", userID: 1, roles: []model.Role{model.RoleRealtor}, want: http.StatusUnauthorized},
		{name: "right role", userID: 2, roles: []model.Role{model.RoleRealtor}, want: http.StatusOK},
		{name: "any of", userID: 1, roles: []model.Role{model.RoleBuyer, model.RoleRealtor}, want: http.StatusOK},
		{name: "deleted user", userID: 9, roles: []model.Role{model.RoleBuyer}, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var loaded *model.User
			h := RequireRoles(users, tt.roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				loaded, _ = UserFromContext(r.Context())
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, withIdentity(tt.userID))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK && len(tt.roles) > 0 {
				require.NotNil(t, loaded)
				assert.Equal(t, tt.userID, loaded.ID)
			}
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}
