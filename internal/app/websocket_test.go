package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	wstypes "jvhelp-service/internal/domain/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialAdminFeed(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func readEvent(t *testing.T, conn *websocket.Conn) wstypes.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg wstypes.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestAdminLiveFeed(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.container.Hub.Run(ctx)

	srv := httptest.NewServer(a.container.Engine)
	defer srv.Close()

	_, resp, err := dialAdminFeed(t, srv, strings.Repeat("0", 64))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, _ := a.login()
	conn, _, err := dialAdminFeed(t, srv, token)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, wstypes.EventTypeConnected, readEvent(t, conn).Type)
	assert.Equal(t, 1, a.container.Hub.TotalClients())

	w := a.do(http.MethodPost, "/api/user-thoughts", "", gin.H{"thought": "hello admins"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, wstypes.EventTypeThoughtCreated, readEvent(t, conn).Type)

	w = a.do(http.MethodPost, "/api/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wstypes.EventTypeForceLogout, readEvent(t, conn).Type)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, a.container.Hub.TotalClients())
}
