// internal/handlers/websocket/websocket.go
package handlers

import (
	"net/http"
	"time"

	"jvhelp-service/internal/middleware"
	"jvhelp-service/internal/pkg/response"
	ws "jvhelp-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; an empty list or
// "*" accepts any origin.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(set) == 0 {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleConnection upgrades an authenticated admin to the live feed.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	// browsers cannot set headers on a websocket handshake
	token := c.Query("token")
	if token == "" {
		token, _ = middleware.ExtractBearer(c.GetHeader("Authorization"))
	}
	if token == "" {
		response.Unauthorized(c, response.MsgInvalidToken)
		return
	}

	auth, err := h.hub.AuthenticateClient(c.Request.Context(), token)
	if err != nil {
		h.logger.Info("websocket authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.FromError(c, err, response.MsgInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, auth)
	if err := h.hub.Register(client); err != nil {
		h.logger.Warn("websocket hub unavailable", zap.Error(err))
		_ = conn.Close()
		return
	}

	h.logger.Info("websocket client connected",
		zap.Int64("admin_id", auth.Principal.ID),
		zap.String("username", auth.Principal.Username),
	)

	go client.WritePump()
	go client.ReadPump()
}

// GetStats reports live connections (admin only).
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	response.Success(c, http.StatusOK, gin.H{
		"total_connections": h.hub.TotalClients(),
		"connected":         h.hub.IsConnected(principal.ID),
		"timestamp":         time.Now(),
	})
}
