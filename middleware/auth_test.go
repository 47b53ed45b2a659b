package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsreddy3/persona-backend/logic"
	"github.com/jsreddy3/persona-backend/models"
)

type stubResolver struct {
	user  *models.User
	err   error
	creds logic.Credentials
}

func (r *stubResolver) Resolve(_ context.Context, creds logic.Credentials) (*models.User, error) {
	r.creds = creds
	return r.user, r.err
}

func newAuthRouter(resolver *stubResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(resolver), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return r
}

func TestAuthBearerToken(t *testing.T) {
	resolver := &stubResolver{user: &models.User{ID: 7}}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-123", resolver.creds.SessionToken)
	assert.Nil(t, resolver.creds.Proof)
}

func TestAuthSessionTokenQuery(t *testing.T) {
	resolver := &stubResolver{user: &models.User{ID: 7}}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me?session_token=tok-456", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-456", resolver.creds.SessionToken)
}

func TestAuthBearerWinsOverQueryAndProof(t *testing.T) {
	resolver := &stubResolver{user: &models.User{ID: 7}}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me?session_token=ignored", nil)
	req.Header.Set("Authorization", "Bearer tok-header")
	req.Header.Set("X-WorldID-Credentials", `{"nullifier_hash":"0xabc","merkle_root":"0xdef","proof":"0x123","verification_level":"orb"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-header", resolver.creds.SessionToken)
	assert.Nil(t, resolver.creds.Proof)
}

func TestAuthProofHeader(t *testing.T) {
	resolver := &stubResolver{user: &models.User{ID: 7}}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-WorldID-Credentials", `{"nullifier_hash":"0xabc","merkle_root":"0xdef","proof":"0x123","verification_level":"orb"}`)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.8")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resolver.creds.SessionToken)
	require.NotNil(t, resolver.creds.Proof)
	assert.Equal(t, "0xabc", resolver.creds.Proof.NullifierHash)
	assert.Equal(t, "es-MX", resolver.creds.Language)
}

func TestAuthRejectsUnauthenticated(t *testing.T) {
	resolver := &stubResolver{err: logic.ErrUnauthenticated}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
}

func TestCurrentUserMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
}
