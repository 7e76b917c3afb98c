package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	wshub "github.com/KandruPoojitha/CryptoApp/internal/server/websocket"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

type WebSocketHandler struct {
	hub      *wshub.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *wshub.Hub, cfg config.WebSocketConfig) *WebSocketHandler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
	}
	if !cfg.CheckOrigin {
		// accept cross-origin handshakes; when the flag is on the
		// upgrader's default same-origin check applies, which still
		// admits requests without an Origin header (native clients)
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return &WebSocketHandler{
		hub:      hub,
		upgrader: upgrader,
	}
}

// HandleConnection upgrades an authenticated request and keeps the
// connection registered until the peer goes away. The client never
// sends application messages; the read loop only watches for close.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the handshake error
		return
	}

	client := &wshub.Client{
		UserID: userID(c),
		Conn:   conn,
	}
	h.hub.Register <- client

	go func() {
		defer func() {
			h.hub.Unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
