// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"jvhelp-service/internal/domain/admin"
	"jvhelp-service/internal/middleware"
	"jvhelp-service/internal/pkg/response"
	authUsecase "jvhelp-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ========== Login ==========

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "username and password are required")
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.authService.Authenticate(c.Request.Context(), &req)
	if err != nil {
		if !response.IsClientError(err) {
			h.logger.Error("login failed",
				zap.String("username", req.Username),
				zap.String("ip", req.IPAddress),
				zap.Error(err),
			)
		}
		response.FromError(c, err, response.MsgInvalidCredentials)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":      loginResp.Token,
		"expires_at": loginResp.ExpiresAt,
		"admin":      loginResp.Admin,
	})
}

// ========== Logout ==========

// Logout revokes the bearer token. It does not sit behind AdminAuth: an
// already revoked or expired token still logs out successfully.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.ExtractBearer(c.GetHeader("Authorization"))
	if !ok {
		response.Unauthorized(c, response.MsgInvalidToken)
		return
	}

	if err := h.authService.Revoke(c.Request.Context(), token); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.Internal(c)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// ========== Session ==========

func (h *AuthHandler) Dashboard(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"modules": admin.DashboardModules,
	})
}

// Me returns the principal bound to the current token.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"admin": middleware.MustGetPrincipal(c),
	})
}
