// internal/middleware/helpers.go
package middleware

import (
	"jvhelp-service/internal/domain/admin"

	"github.com/gin-gonic/gin"
)

// MustGetPrincipal gets the authenticated principal or panics.
// Only valid behind AdminAuth.
func MustGetPrincipal(c *gin.Context) *admin.PrincipalInfo {
	p, exists := GetPrincipal(c)
	if !exists {
		panic("principal not found in context")
	}
	return p
}

// MustGetToken gets the bearer token or panics.
func MustGetToken(c *gin.Context) string {
	token, exists := GetToken(c)
	if !exists {
		panic("session token not found in context")
	}
	return token
}

// Username is the acting admin's name, for logs and events.
func Username(c *gin.Context) string {
	if p, ok := GetPrincipal(c); ok {
		return p.Username
	}
	return ""
}
