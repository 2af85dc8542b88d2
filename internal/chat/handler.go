package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// Authenticator verifies the token passed on the upgrade request.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (domain.Session, error)
}

type Handler struct {
	hub      *Hub
	auth     Authenticator
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler builds the upgrade handler. allowedOrigins containing "*" accepts
// any Origin header.
func NewHandler(hub *Hub, auth Authenticator, allowedOrigins []string, log zerolog.Logger) *Handler {
	return &Handler{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log.With().Str("component", "chat").Logger(),
	}
}

// Connect godoc
// @Summary      Join a chat room
// @Description  Upgrades to a WebSocket and relays frames to the other members of the room.
// @Tags         chat
// @Param        room   query  string  false  "Room id (default lobby)"
// @Param        token  query  string  true   "Session token"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /ws/chat [get]
func (h *Handler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = bearer(c.Request().Header.Get(echo.HeaderAuthorization))
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	session, err := h.auth.Authenticate(c.Request().Context(), token)
	if err != nil {
		return err
	}

	room := strings.TrimSpace(c.QueryParam("room"))
	if room == "" {
		room = DefaultRoom
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := NewClient(h.hub, conn, room, session.UserID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
	return nil
}

func bearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
