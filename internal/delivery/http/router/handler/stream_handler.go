package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"helios/config"
	"helios/internal/delivery/http/response"
	"helios/internal/domain/entity"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/errors"
	"helios/internal/realtime"
)

const (
	pingInterval  = 30 * time.Second
	writeDeadline = 10 * time.Second
	readDeadline  = 60 * time.Second
)

// StreamHandler upgrades long-lived connections that mirror registry and
// inbox changes to clients. Browsers cannot set headers on a WebSocket
// handshake, so the access token arrives as a query parameter.
type StreamHandler struct {
	hub         *realtime.Hub
	tokenSvc    service.TokenService
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewStreamHandler is the constructor for StreamHandler, injected by Fx.
func NewStreamHandler(cfg *config.Config, hub *realtime.Hub, tokenSvc service.TokenService, profileRepo repository.ProfileRepository, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		hub:         hub,
		tokenSvc:    tokenSvc,
		profileRepo: profileRepo,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.HTTP.AllowedOrigins),
		},
	}
}

// originChecker accepts handshakes from the configured origins, or from the
// serving host itself when none are configured. Requests without an Origin
// header come from non-browser clients and pass through.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		parsed, err := url.Parse(origin)
		if err != nil {
			return false
		}

		if len(allowed) == 0 {
			return strings.EqualFold(parsed.Host, r.Host)
		}
		for _, candidate := range allowed {
			if strings.EqualFold(origin, candidate) {
				return true
			}
		}

		return false
	}
}

// RegistryStream streams the caller's site and system changes plus global
// catalog updates.
func (h *StreamHandler) RegistryStream(c echo.Context) error {
	claims, err := h.authenticate(c)
	if err != nil {
		return response.Unauthorized(c, "AUTHENTICATION_REQUIRED", "A valid token query parameter is required")
	}

	subs := []*realtime.Subscription{
		h.hub.Subscribe(realtime.TopicSites, claims.UserID),
		h.hub.Subscribe(realtime.TopicSystems, claims.UserID),
		h.hub.Subscribe(realtime.TopicCatalog, uuid.Nil),
	}

	return h.serve(c, claims.UserID, subs)
}

// AdminStream streams the contact inbox and catalog updates. Admin role
// required; a pending profile lookup refuses the upgrade rather than guessing.
func (h *StreamHandler) AdminStream(c echo.Context) error {
	claims, err := h.authenticate(c)
	if err != nil {
		return response.Unauthorized(c, "AUTHENTICATION_REQUIRED", "A valid token query parameter is required")
	}

	profile, err := h.profileRepo.FindByUserID(c.Request().Context(), claims.UserID)
	if err != nil {
		return response.Unauthorized(c, "AUTHORIZATION_PENDING", "Identity not yet established")
	}
	if profile.Role != entity.RoleAdmin {
		return response.Forbidden(c, "FORBIDDEN", "Access denied")
	}

	subs := []*realtime.Subscription{
		h.hub.Subscribe(realtime.TopicMessages, uuid.Nil),
		h.hub.Subscribe(realtime.TopicCatalog, uuid.Nil),
	}

	return h.serve(c, claims.UserID, subs)
}

func (h *StreamHandler) authenticate(c echo.Context) (*service.Claims, error) {
	token := c.QueryParam("token")
	if token == "" {
		return nil, errors.New("missing token")
	}

	return h.tokenSvc.ValidateAccessToken(token)
}

// serve pumps subscription events to the socket until the client disconnects
// or a subscription is dropped (logout, account deletion).
func (h *StreamHandler) serve(c echo.Context, userID uuid.UUID, subs []*realtime.Subscription) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "websocket upgrade failed")
	}
	defer conn.Close()
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()

	h.logger.Debug("Stream connected", slog.String("user_id", userID.String()))

	// Fan all subscriptions into one channel. A closed subscription ends the
	// connection; the client reconnects with a fresh token.
	events := make(chan realtime.Event, 16)
	dropped := make(chan struct{})
	var dropOnce sync.Once
	for _, sub := range subs {
		go func(sub *realtime.Subscription) {
			for event := range sub.C {
				select {
				case events <- event:
				case <-dropped:
					return
				}
			}
			dropOnce.Do(func() { close(dropped) })
		}(sub)
	}

	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(readDeadline))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-disconnected:
			h.logger.Debug("Stream disconnected", slog.String("user_id", userID.String()))
			return nil
		case <-dropped:
			deadline := time.Now().Add(writeDeadline)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"), deadline)
			return nil
		case event := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteJSON(event); err != nil {
				return nil
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
