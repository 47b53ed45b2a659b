package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsreddy3/persona-backend/logic"
	"github.com/jsreddy3/persona-backend/models"
)

const userContextKey = "user"

// Resolver turns request credentials into a user.
type Resolver interface {
	Resolve(ctx context.Context, creds logic.Credentials) (*models.User, error)
}

// Auth authenticates the request with either a bearer session token or a
// World ID proof bundle and stores the user in the gin context.
func Auth(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := credentialsFromRequest(c)
		user, err := resolver.Resolve(c.Request.Context(), creds)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Auth.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// credentialsFromRequest collects whichever credential kind the request
// carries. Bearer token in the Authorization header wins; the session_token
// query parameter exists for EventSource clients that cannot set headers;
// the X-WorldID-Credentials header carries a JSON proof bundle.
func credentialsFromRequest(c *gin.Context) logic.Credentials {
	creds := logic.Credentials{
		Language: preferredLanguage(c.GetHeader("Accept-Language")),
	}

	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		creds.SessionToken = strings.TrimPrefix(header, "Bearer ")
		return creds
	}
	if token := c.Query("session_token"); token != "" {
		creds.SessionToken = token
		return creds
	}
	if raw := c.GetHeader("X-WorldID-Credentials"); raw != "" {
		var proof logic.WorldIDProof
		if err := json.Unmarshal([]byte(raw), &proof); err == nil {
			creds.Proof = &proof
		}
	}
	return creds
}

// preferredLanguage extracts the first tag from an Accept-Language header.
func preferredLanguage(header string) string {
	lang := header
	if idx := strings.IndexAny(lang, ",;"); idx >= 0 {
		lang = lang[:idx]
	}
	return strings.TrimSpace(lang)
}
