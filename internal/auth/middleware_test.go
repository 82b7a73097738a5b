package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(c *TokenCodec, role Role) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(c.Authenticate, RequireRole(role))
		r.Get("/secure", func(w http.ResponseWriter, req *http.Request) {
			id, ok := FromContext(req.Context())
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(id.Name))
		})
	})
	return r
}

func TestAuthenticateMissingToken(t *testing.T) {
	c := NewTokenCodec("s")
	rec := httptest.NewRecorder()
	newProtectedRouter(c, RoleCustomer).ServeHTTP(rec, httptest.NewRequest("GET", "/secure", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}

func TestAuthenticateBadToken(t *testing.T) {
	c := NewTokenCodec("s")
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	newProtectedRouter(c, RoleCustomer).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	c := NewTokenCodec("s")
	token := c.Issue(Identity{ID: 5, Name: "Grace", Role: RoleCustomer})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newProtectedRouter(c, RoleCustomer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grace", rec.Body.String())
}

func TestAuthenticatePlainTokenAccepted(t *testing.T) {
	c := NewTokenCodec("s")
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", c.Issue(Identity{ID: 5, Name: "Grace", Role: RoleCustomer}))
	rec := httptest.NewRecorder()
	newProtectedRouter(c, RoleCustomer).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleMismatch(t *testing.T) {
	c := NewTokenCodec("s")
	token := c.Issue(Identity{ID: 5, Name: "Grace", Role: RoleCustomer})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newProtectedRouter(c, RoleOwner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
}
