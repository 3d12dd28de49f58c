package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ramservice/repair-quote-api/internal/auth"
)

// AdminAuth gates the administrative routes. Two credentials are accepted:
//
//   - a Bearer token from /admin/login, or
//   - the legacy x-admin-password header (or admin_password query param)
//     that older admin tooling still sends.
//
// Both secrets arrive as arguments; with neither configured the gate stays
// closed rather than open.
func AdminAuth(adminPassword, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
				c.Abort()
				return
			}
			if err := auth.ValidateAdminToken(jwtSecret, parts[1]); err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		pass := c.GetHeader("x-admin-password")
		if pass == "" {
			pass = c.Query("admin_password")
		}
		if adminPassword != "" && subtle.ConstantTimeCompare([]byte(pass), []byte(adminPassword)) == 1 {
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
	}
}
