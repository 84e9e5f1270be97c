// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"strings"

	"jvhelp-service/internal/domain/admin"
	"jvhelp-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	principalKey = "principal"
	tokenKey     = "session_token"
)

// TokenValidator resolves a bearer token to its principal.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*admin.PrincipalInfo, error)
}

type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// AdminAuth gate-keeps the admin routes. Every failure gets the same 401
// body; the reason is only logged.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, response.MsgInvalidToken)
			return
		}

		principal, err := m.validator.Validate(c.Request.Context(), token)
		if err != nil {
			m.logger.Debug("admin request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.FromError(c, err, response.MsgInvalidToken)
			return
		}

		c.Set(principalKey, principal)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// ExtractBearer parses "Bearer <token>". The scheme is case-insensitive.
func ExtractBearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func GetPrincipal(c *gin.Context) (*admin.PrincipalInfo, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*admin.PrincipalInfo)
	return p, ok
}

func GetToken(c *gin.Context) (string, bool) {
	v, exists := c.Get(tokenKey)
	if !exists {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
