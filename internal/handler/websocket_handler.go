package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades connections and registers them with the hub
type WebSocketHandler struct {
	hub *websocket.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is not checked; the deployment fronts this with its own
	// CORS policy and there is no cookie-based auth to protect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connect handles GET /ws/:user_id
func (h *WebSocketHandler) Connect(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, userID, h.hub)
	h.hub.Register(client)

	log.Info().Str("user_id", userID).Str("client_id", client.ID()).Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
