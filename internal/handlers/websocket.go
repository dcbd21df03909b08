package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mkrishnakr62/chatting-backend-app/internal/presence"
	"github.com/mkrishnakr62/chatting-backend-app/internal/ws"
)

// WebSocketHandler upgrades authenticated requests into realtime
// connections registered with the presence registry.
type WebSocketHandler struct {
	registry *presence.Registry
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(registry *presence.Registry) *WebSocketHandler {
	return &WebSocketHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin once the frontend domain is fixed
				return true
			},
		},
	}
}

func (h *WebSocketHandler) Handle(c *gin.Context) {
	userID := currentUser(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.registry, conn, userID)
	h.registry.Register(userID, client)

	go client.WritePump()
	go client.ReadPump()
}
