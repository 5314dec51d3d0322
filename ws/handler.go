package ws

import (
	"net/http"

	"collabex_backend/internal/logger"
	"collabex_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Hub      *Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler builds the upgrade handler. checkOrigin may be nil to
// accept any origin.
func NewWebSocketHandler(hub *Hub, checkOrigin func(r *http.Request) bool) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &WebSocketHandler{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeWS upgrades an authenticated request. It expects QueryTokenAuth in
// front of it.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "websocket upgrade failed", err)
		return
	}

	client := newClient(h.Hub, conn, userID)
	logger.CtxInfo(c.Request.Context(), "websocket client connected", "conn_id", client.ConnID)

	go client.readPump()
	go client.writePump()
}

// RegisterRoutes mounts GET /ws behind the given auth middleware.
func (h *WebSocketHandler) RegisterRoutes(r gin.IRouter, authMiddleware gin.HandlerFunc) {
	r.GET("/ws", authMiddleware, h.ServeWS)
}
