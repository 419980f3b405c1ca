package sessionevents

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/sessionstate"
)

const writeTimeout = 10 * time.Second

// Event is one frame on the wire. Active reports whether a session
// error is currently set; Message is empty when Active is false.
type Event struct {
	Active  bool   `json:"active"`
	Message string `json:"message,omitempty"`
}

// Hub upgrades subscribers and relays store changes to them.
type Hub struct {
	store    *sessionstate.Store
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// Option configures the hub.
type Option func(*Hub)

// WithLogger supplies a logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithUpgrader overrides the websocket upgrader, e.g. to relax the
// origin check in development.
func WithUpgrader(u websocket.Upgrader) Option {
	return func(h *Hub) {
		h.upgrader = u
	}
}

// NewHub returns a hub fanning out changes of store.
func NewHub(store *sessionstate.Store, opts ...Option) *Hub {
	h := &Hub{
		store:  store,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			CheckOrigin: sameOrigin,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the connection and streams session-state changes
// until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Debug("websocket upgrade rejected", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ch, cancel := h.store.Subscribe()
	defer cancel()

	// The subscriber sees the current state before any change.
	if err := h.send(conn, h.store.Current()); err != nil {
		return
	}

	// Reads are discarded; the read pump only detects disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := h.send(conn, msg); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (h *Hub) send(conn *websocket.Conn, msg *sessionstate.Message) error {
	event := Event{}
	if msg != nil {
		event.Active = true
		event.Message = msg.Text
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(event); err != nil {
		h.logger.Debug("session event write failed", slog.Any("error", err))
		return err
	}
	return nil
}

// sameOrigin accepts requests whose Origin host matches the request
// host. Requests without an Origin header (non-browser clients) pass.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
