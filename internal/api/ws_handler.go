package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/events"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
)

const (
	// wsWriteWait is the deadline for a single frame write.
	wsWriteWait = 10 * time.Second

	// wsPongWait is how long a connection may stay silent before it is
	// considered dead. Pings go out at wsPingPeriod to keep it alive.
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10

	// wsSendBuffer is the per-session outbound queue. A session that falls
	// this far behind starts dropping events; delivery is at-most-once.
	wsSendBuffer = 32
)

// wsClientMessage is the frame clients send to manage room membership.
type wsClientMessage struct {
	Action string    `json:"action"`
	UserID uuid.UUID `json:"user_id"`
}

// wsSession adapts one WebSocket connection to the events.Session interface.
// The send channel is never closed; done signals shutdown instead, so a
// broadcast racing a disconnect cannot panic on a closed channel.
type wsSession struct {
	id   string
	conn *websocket.Conn
	send chan events.Event
	done chan struct{}
}

var _ events.Session = (*wsSession)(nil)

func (s *wsSession) ID() string { return s.id }

// Send queues an event for delivery. It never blocks: when the session's
// buffer is full or the session is closing, the event is dropped and an
// error returned so the broadcaster can log it.
func (s *wsSession) Send(event events.Event) error {
	select {
	case <-s.done:
		return errors.New("session closed")
	case s.send <- event:
		return nil
	default:
		return errors.New("session send buffer full")
	}
}

// WSHandler upgrades HTTP requests to WebSocket connections and bridges
// them to the event broadcaster. Connections are authenticated by the same
// middleware as the REST routes; a client still has to send an explicit
// join frame, and it can only ever join its own room.
type WSHandler struct {
	broadcaster *events.Broadcaster
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(broadcaster *events.Broadcaster, logger *slog.Logger) *WSHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WSHandler")
	}

	return &WSHandler{
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With(slog.String("component", "ws_handler")),
	}
}

// ServeHTTP handles GET /ws requests.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	session := &wsSession{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan events.Event, wsSendBuffer),
		done: make(chan struct{}),
	}

	log.Debug("websocket session opened",
		slog.String("session_id", session.id),
		slog.String("user_id", userID.String()))

	go h.writePump(session, log)
	h.readPump(session, userID, log)
}

// readPump consumes client frames until the connection drops. The only
// meaningful client frames are join and leave; everything else is ignored.
func (h *WSHandler) readPump(session *wsSession, userID uuid.UUID, log *slog.Logger) {
	defer func() {
		h.broadcaster.Leave(session.id)
		close(session.done)
		_ = session.conn.Close()
		log.Debug("websocket session closed", slog.String("session_id", session.id))
	}()

	session.conn.SetReadLimit(1024)
	_ = session.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	session.conn.SetPongHandler(func(string) error {
		return session.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read error",
					slog.String("session_id", session.id),
					slog.String("error", err.Error()))
			}
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("ignoring malformed websocket frame",
				slog.String("session_id", session.id))
			continue
		}

		switch msg.Action {
		case "join":
			// A session may only join the room of the user it
			// authenticated as, whatever user ID the frame carries.
			if msg.UserID != uuid.Nil && msg.UserID != userID {
				log.Warn("join frame for foreign room rejected",
					slog.String("session_id", session.id),
					slog.String("user_id", userID.String()),
					slog.String("requested_user_id", msg.UserID.String()))
				continue
			}
			h.broadcaster.Join(session, userID)
		case "leave":
			h.broadcaster.Leave(session.id)
		default:
			log.Debug("ignoring unknown websocket action",
				slog.String("session_id", session.id),
				slog.String("action", msg.Action))
		}
	}
}

// writePump drains the session's send queue onto the wire and keeps the
// connection alive with pings.
func (h *WSHandler) writePump(session *wsSession, log *slog.Logger) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = session.conn.Close()
	}()

	for {
		select {
		case <-session.done:
			_ = session.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			return
		case event := <-session.send:
			_ = session.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := session.conn.WriteJSON(event); err != nil {
				log.Debug("websocket write failed",
					slog.String("session_id", session.id),
					slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			_ = session.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
