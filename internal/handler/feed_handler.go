package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/ummahhub/ummah-backend/internal/realtime"
	"github.com/ummahhub/ummah-backend/internal/service"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// FeedHandler serves the per-conversation change feed over a
// websocket: insert events only, filtered by conversation id, torn
// down unconditionally when the socket closes.
type FeedHandler struct {
	hub *realtime.Hub
	svc service.ConversationService
	log zerolog.Logger

	upgrader websocket.Upgrader
}

func NewFeedHandler(hub *realtime.Hub, svc service.ConversationService, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		hub: hub,
		svc: svc,
		log: log,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin:      func(*http.Request) bool { return true },
		},
	}
}

func (h *FeedHandler) Subscribe(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	// Participant check before the upgrade; the feed carries message
	// bodies.
	if _, err := h.svc.Get(c.Request().Context(), convID, uid); err != nil {
		return writeServiceError(c, err, "conversation not found")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sub := h.hub.Subscribe(convID)
	done := make(chan struct{})

	// Reader exists only to notice the peer going away.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		sub.Close()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug().Err(err).Uint64("conversation_id", convID).Msg("feed write failed")
				return nil
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}
