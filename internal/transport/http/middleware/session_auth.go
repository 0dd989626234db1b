package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-user-account-api/internal/core/auth"
	"go-user-account-api/internal/core/session"
	"go-user-account-api/internal/domain"
)

// Context keys for the identity bound to the request. The names match the
// session attributes of the previous deployment.
const (
	KeyUserID    = "currentUser"
	KeyUserEmail = "userEmail"
	KeyUserRole  = "userRole"
	KeyUserNom   = "userNom"
	KeySessionID = "sessionId"
)

// LoadSession resolves the caller's identity from the session cookie, or
// failing that from a bearer token, and binds it to the context. It never
// aborts; the guards below decide what anonymous callers may do.
func LoadSession(store session.Store, jwter *auth.JWTer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(cookieName); err == nil && sid != "" {
			if d, err := store.Get(c.Request.Context(), sid); err == nil && d != nil {
				c.Set(KeyUserID, d.UserID)
				c.Set(KeyUserEmail, d.Email)
				c.Set(KeyUserRole, d.Role)
				c.Set(KeyUserNom, d.Nom)
				c.Set(KeySessionID, sid)
				c.Next()
				return
			}
		}
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			if claims, err := jwter.Parse(strings.TrimPrefix(ah, "Bearer ")); err == nil {
				c.Set(KeyUserID, claims.UID)
				c.Set(KeyUserEmail, claims.Email)
				c.Set(KeyUserRole, claims.Role)
				c.Set(KeyUserNom, claims.Nom)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, zero when anonymous.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(KeyUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == 0 {
			abort(c, http.StatusUnauthorized, "Authentication required. Please login.")
			return
		}
		c.Next()
	}
}

// RequireAdmin implies RequireAuthenticated; the role comparison is
// case-sensitive on purpose.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == 0 {
			abort(c, http.StatusUnauthorized, "Authentication required. Please login.")
			return
		}
		if c.GetString(KeyUserRole) != string(domain.RoleAdmin) {
			abort(c, http.StatusForbidden, "Access denied. Admin role required.")
			return
		}
		c.Next()
	}
}
