package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"cloud_kitchen/pkg"

	"github.com/gin-gonic/gin"
)

const adminContextKey = "is_admin"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized)

// DetectAdmin marks requests carrying "Authorization: Bearer <apiKey>" as admin.
// It never rejects; RequireAdmin does. An empty apiKey disables admin access.
func DetectAdmin(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(adminContextKey, apiKey != "" && bearerMatches(c.GetHeader("Authorization"), apiKey))
		c.Next()
	}
}

// RequireAdmin aborts with 401 unless DetectAdmin marked the request.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Next()
	}
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(adminContextKey)
}

func bearerMatches(header, apiKey string) bool {
	token, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(apiKey)) == 1
}
