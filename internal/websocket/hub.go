// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"jvhelp-service/internal/domain/admin"
	wstypes "jvhelp-service/internal/domain/websocket"
	"jvhelp-service/internal/pkg/metrics"
	"jvhelp-service/internal/pkg/session"

	"go.uber.org/zap"
)

// Authenticator validates a bearer token the same way the HTTP middleware does.
type Authenticator interface {
	Validate(ctx context.Context, token string) (*admin.PrincipalInfo, error)
}

// Hub fans server events out to connected admin panels and tears down
// sockets whose session ends.
type Hub struct {
	// Registered clients by principal ID
	clients map[int64]map[*Client]struct{}
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	done       chan struct{}

	auth    Authenticator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type BroadcastMessage struct {
	PrincipalIDs []int64 // nil means everyone
	Channel      wstypes.ChannelType
	Message      *wstypes.WSMessage
}

func NewHub(auth Authenticator, logger *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		auth:       auth,
		logger:     logger,
		metrics:    m,
	}
}

// AuthenticateClient validates the session token for a socket upgrade.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	info, err := h.auth.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &ClientAuth{
		Principal:  *info,
		Token:      token,
		SessionKey: session.Hash(token),
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// Register hands a client to the run loop.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	id := client.auth.Principal.ID
	if h.clients[id] == nil {
		h.clients[id] = make(map[*Client]struct{})
	}
	h.clients[id][client] = struct{}{}
	total := h.totalClients()
	h.mu.Unlock()

	h.metrics.WSConnected()
	h.logger.Info("admin socket connected",
		zap.Int64("admin_id", id),
		zap.String("username", client.auth.Principal.Username),
		zap.Int("total", total),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]any{
		"admin":    client.auth.Principal,
		"channels": wstypes.DefaultChannels,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	removed := h.removeLocked(client)
	h.mu.Unlock()

	if removed {
		h.logger.Debug("admin socket disconnected", zap.Int64("admin_id", client.auth.Principal.ID))
	}
}

// removeLocked drops client from the registry and closes it. Caller holds mu.
func (h *Hub) removeLocked(client *Client) bool {
	id := client.auth.Principal.ID
	clients, ok := h.clients[id]
	if !ok {
		return false
	}
	if _, exists := clients[client]; !exists {
		return false
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.clients, id)
	}
	client.Close()
	h.metrics.WSDisconnected()
	return true
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(clients map[*Client]struct{}) {
		for client := range clients {
			if client.IsSubscribed(msg.Channel) {
				client.SendMessage(msg.Message)
			}
		}
	}

	if msg.PrincipalIDs == nil {
		for _, clients := range h.clients {
			send(clients)
		}
		return
	}
	for _, id := range msg.PrincipalIDs {
		send(h.clients[id])
	}
}

// Publish queues a message; it is dropped when the hub is saturated or stopped.
func (h *Hub) Publish(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping message", zap.String("type", string(msg.Message.Type)))
	}
}

// Broadcast sends an event on a channel to every connected admin.
func (h *Hub) Broadcast(channel wstypes.ChannelType, eventType wstypes.EventType, data any) {
	h.Publish(&BroadcastMessage{Channel: channel, Message: wstypes.NewMessage(eventType, data)})
}

// SessionRevoked closes every socket opened with the session identified by
// tokenHash.
func (h *Hub) SessionRevoked(tokenHash, reason string) {
	msg := wstypes.NewMessage(wstypes.EventTypeForceLogout, wstypes.SessionEventData{
		Reason:  reason,
		Message: "You have been logged out",
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			if client.auth.SessionKey == tokenHash {
				client.SendMessage(msg)
				h.removeLocked(client)
			}
		}
	}
}

// PrincipalDisabled closes every socket belonging to the principal.
func (h *Hub) PrincipalDisabled(principalID int64, reason string) {
	msg := wstypes.NewMessage(wstypes.EventTypeDisconnected, wstypes.SessionEventData{
		Reason:  reason,
		Message: "Your account has been disabled",
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[principalID] {
		client.SendMessage(msg)
		h.removeLocked(client)
	}
	h.logger.Info("disconnected admin sockets", zap.Int64("admin_id", principalID), zap.String("reason", reason))
}

// IsConnected reports whether the principal has any open socket.
func (h *Hub) IsConnected(principalID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[principalID]) > 0
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) queueUnregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
