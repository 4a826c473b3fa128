package stream

import (
	"context"
	"encoding/json"
	"sync"

	"go-dashboard/internal/events"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Hub fans dashboard events out to every connected websocket client. It is
// a listener on the in-process bus, so delivery inherits the bus's
// best-effort contract.
type Hub struct {
	bus events.Bus
	log *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(lc fx.Lifecycle, bus events.Bus, log *zap.Logger) *Hub {
	h := &Hub{
		bus:   bus,
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}

	var cancel func()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ch, stop := bus.Subscribe()
			cancel = stop
			go h.broadcast(ch)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			return nil
		},
	})

	return h
}

func (h *Hub) broadcast(ch <-chan events.Event) {
	for ev := range ch {
		payload, err := json.Marshal(ev)
		if err != nil {
			h.log.Warn("dropping unmarshalable event", zap.String("event", ev.Name), zap.Error(err))
			continue
		}

		h.mu.Lock()
		for conn := range h.conns {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				delete(h.conns, conn)
				_ = conn.Close()
			}
		}
		h.mu.Unlock()
	}
}

// HandleConnection keeps the socket registered until the client goes away.
// Inbound messages are ignored; the stream is one way.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
