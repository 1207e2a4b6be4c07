package ws

import (
	"net/http"
	"strings"
	"time"

	"friendchat/config"
	"friendchat/pkg/auth"
	"friendchat/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Presence is notified as connections come and go. Implementations must be
// best-effort; failures never affect the connection lifecycle.
type Presence interface {
	SetOnline(userID string)
	SetOffline(userID string)
}

// Handler authenticates websocket handshakes and runs the connection
// lifecycle against the registry.
type Handler struct {
	registry *Registry
	verifier *auth.Verifier
	presence Presence
	cfg      config.WebSocketConfig
}

// NewHandler creates a websocket Handler. presence may be nil.
func NewHandler(registry *Registry, verifier *auth.Verifier, presence Presence, cfg config.WebSocketConfig) *Handler {
	return &Handler{
		registry: registry,
		verifier: verifier,
		presence: presence,
		cfg:      cfg,
	}
}

// Serve is the gin handler for GET /ws. The credential is passed as a
// `token` query parameter (or in the Sec-WebSocket-Protocol header); the
// handshake is refused on a missing or invalid credential.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
	}

	identity, err := h.verifier.Verify(token)
	if err != nil {
		response.Unauthorized(c, "missing or invalid credential")
		return
	}

	// Echo the subprotocol so browser clients do not reject the handshake.
	respHeader := http.Header{}
	if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
		respHeader.Set("Sec-WebSocket-Protocol", protocol)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		return
	}

	client := &Client{
		UserID: identity,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	h.registry.Attach(identity, client)
	zap.L().Info("websocket connected", zap.String("user_id", identity))

	if h.presence != nil {
		h.presence.SetOnline(identity)
	}

	defer func() {
		h.registry.Detach(identity, client)
		if h.presence != nil {
			h.presence.SetOffline(identity)
		}
		_ = conn.Close()
		zap.L().Info("websocket disconnected", zap.String("user_id", identity))
	}()

	// Write pump: drains the send queue and keeps the connection alive with
	// pings. Exits when the send channel is closed (detach or replacement)
	// or a ping fails.
	go func() {
		ticker := time.NewTicker(h.cfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				_ = conn.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	// Read pump: the client sends nothing we act on, but reads drive pong
	// handling and disconnect detection.
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	}
}
