// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrMissingToken = errors.New("missing authentication token")
	ErrHubClosed    = errors.New("hub is not running")
)
