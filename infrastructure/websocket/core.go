package websocket

import (
	"context"
	"errors"
	"sync"

	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/hilthontt/roomly/infrastructure/metrics"
	"go.uber.org/zap"
)

const (
	ActiveConnectionsMetric = "active_websocket_connections"
	MessagesSentMetric      = "websocket_messages_sent"
)

type Core struct {
	roomMgr    *RoomManager
	register   chan *Client
	unregister chan *Client
	broadcast  chan *WSMessage
	logger     *logger.Logger
	metrics    metrics.Manager

	shutdown chan struct{}
	once     sync.Once
}

func NewCore(roomMgr *RoomManager, logger *logger.Logger, metricsManager metrics.Manager) *Core {
	return &Core{
		roomMgr:    roomMgr,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *WSMessage, 256),
		logger:     logger,
		metrics:    metricsManager,
		shutdown:   make(chan struct{}),
	}
}

func (c *Core) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("websocket core shutting down")
			c.Shutdown()
			return

		case <-c.shutdown:
			return

		case cl := <-c.register:
			c.roomMgr.AddClient(cl)
			c.metrics.DeltaUpDownCounter(ctx, ActiveConnectionsMetric, 1)
			cl.Deliver(NewSubscribed(cl))

		case cl := <-c.unregister:
			if c.roomMgr.RemoveClient(cl) {
				c.metrics.DeltaUpDownCounter(ctx, ActiveConnectionsMetric, -1)
			}

		case msg := <-c.broadcast:
			if msg.Type == RoomDeleted {
				c.roomMgr.BroadcastToRoom(msg)
				c.roomMgr.DisconnectRoom(msg.RoomID)
				continue
			}
			if _, err := c.roomMgr.BroadcastToRoom(msg); err != nil && !errors.Is(err, ErrRoomNotFound) {
				c.logger.Warn("broadcast error", zap.String("roomId", msg.RoomID), zap.Error(err))
			}
		}
	}
}

func (c *Core) Register(cl *Client) {
	select {
	case c.register <- cl:
	case <-c.shutdown:
		cl.Close()
	}
}

func (c *Core) Unregister(cl *Client) {
	select {
	case c.unregister <- cl:
	case <-c.shutdown:
	}
}

func (c *Core) Broadcast(msg *WSMessage) {
	select {
	case c.broadcast <- msg:
	case <-c.shutdown:
	}
}

func (c *Core) Shutdown() {
	c.once.Do(func() {
		close(c.shutdown)
		c.roomMgr.DisconnectAll()
	})
}

// HubSink forwards room-scoped events to the room's subscribers.
type HubSink struct {
	core *Core
}

func NewHubSink(core *Core) *HubSink {
	return &HubSink{core: core}
}

func (s *HubSink) Name() string { return "websocket" }

func (s *HubSink) Handle(ctx context.Context, event events.Event) error {
	if event.RoomID == "" {
		return nil
	}
	s.core.Broadcast(NewEventMessage(event))
	return nil
}
